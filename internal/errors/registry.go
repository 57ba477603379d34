package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Storage Errors (P001-P009)
	// ============================================

	"P001": {
		Category: CategoryStorage,
		Message:  "Storage unavailable",
		Detail:   "The key-value store is disabled or blocked. Selections are kept in memory for this session only.",
	},
	"P002": {
		Category: CategoryStorage,
		Message:  "Storage read failed",
		Detail:   "A stored selection could not be read.",
	},
	"P003": {
		Category: CategoryStorage,
		Message:  "Storage write failed",
		Detail:   "A selection could not be written to the store.",
	},
	"P004": {
		Category: CategoryStorage,
		Message:  "Storage open failed",
		Detail:   "The storage backend could not be opened.",
	},

	// ============================================
	// Markup Errors (P010-P019)
	// ============================================

	"P010": {
		Category: CategoryMarkup,
		Message:  "Required element missing",
		Detail:   "The page binds to an element that is not present in the document.",
	},
	"P011": {
		Category: CategoryMarkup,
		Message:  "Invalid selector",
		Detail:   "The selector could not be parsed.",
	},
	"P012": {
		Category: CategoryMarkup,
		Message:  "Tab content could not be rendered",
		Detail:   "The tab's Markdown could not be converted to HTML.",
	},

	// ============================================
	// Config Errors (P020-P029)
	// ============================================

	"P020": {
		Category: CategoryConfig,
		Message:  "Catalog not found",
		Detail:   "No catalog file exists at the given path.",
	},
	"P021": {
		Category: CategoryConfig,
		Message:  "Catalog could not be parsed",
	},
	"P022": {
		Category: CategoryConfig,
		Message:  "Catalog is invalid",
	},
	"P023": {
		Category: CategoryConfig,
		Message:  "Catalog already exists",
	},

	// ============================================
	// Script Errors (P030-P039)
	// ============================================

	"P030": {
		Category: CategoryScript,
		Message:  "Invalid replay script",
	},
	"P031": {
		Category: CategoryScript,
		Message:  "Replay step failed",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
