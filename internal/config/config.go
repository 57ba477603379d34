package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/vango-dev/productpage/internal/errors"
)

const (
	// ConfigFileName is the conventional catalog file name.
	ConfigFileName = "product.yaml"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "PRODUCTPAGE_"
)

// Catalog is the complete product page configuration.
type Catalog struct {
	// Title is the product name.
	Title string `koanf:"title" yaml:"title"`

	// Price is the product price in major units.
	Price float64 `koanf:"price" yaml:"price"`

	// MainImage is the image shown before any interaction.
	MainImage string `koanf:"main_image" yaml:"main_image"`

	// Thumbnails are the gallery previews, in display order.
	Thumbnails []Thumbnail `koanf:"thumbnails" yaml:"thumbnails"`

	// Swatches are the color options, in display order.
	Swatches []Swatch `koanf:"swatches" yaml:"swatches"`

	// Sizes are the size control's options, in display order.
	Sizes []string `koanf:"sizes" yaml:"sizes"`

	// DefaultSize is the size control's initial value. Empty means the
	// first size.
	DefaultSize string `koanf:"default_size" yaml:"default_size,omitempty"`

	// SizeChart rows are shown in the size chart modal.
	SizeChart []SizeChartRow `koanf:"size_chart" yaml:"size_chart,omitempty"`

	// Tabs are the content panes below the product.
	Tabs []Tab `koanf:"tabs" yaml:"tabs"`

	// Cards are the "pairs well with" products.
	Cards []Card `koanf:"cards" yaml:"cards,omitempty"`

	// Bundle is the fixed bundle offer.
	Bundle Bundle `koanf:"bundle" yaml:"bundle"`

	// Storage selects the key-value store backend.
	Storage StorageConfig `koanf:"storage" yaml:"storage"`

	// Log configures structured logging.
	Log LogConfig `koanf:"log" yaml:"log"`

	// Metrics configures Prometheus collection.
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`

	path string
}

// Thumbnail is one gallery preview.
type Thumbnail struct {
	Src  string `koanf:"src" yaml:"src"`
	Full string `koanf:"full" yaml:"full,omitempty"`
	Alt  string `koanf:"alt" yaml:"alt,omitempty"`
}

// Swatch is one color option.
type Swatch struct {
	Color      string `koanf:"color" yaml:"color"`
	Label      string `koanf:"label" yaml:"label,omitempty"`
	Background string `koanf:"background" yaml:"background"`
	Image      string `koanf:"image" yaml:"image,omitempty"`
}

// SizeChartRow is one row of the size chart.
type SizeChartRow struct {
	Size   string `koanf:"size" yaml:"size"`
	Chest  string `koanf:"chest" yaml:"chest"`
	Length string `koanf:"length" yaml:"length"`
}

// Tab is one content pane and its button.
type Tab struct {
	ID       string `koanf:"id" yaml:"id"`
	Label    string `koanf:"label" yaml:"label"`
	Markdown string `koanf:"markdown" yaml:"markdown"`
}

// Card is one "pairs well with" product.
type Card struct {
	Title string  `koanf:"title" yaml:"title"`
	Price float64 `koanf:"price" yaml:"price"`
	Image string  `koanf:"image" yaml:"image,omitempty"`
}

// Bundle is the bundle offer.
type Bundle struct {
	Title  string    `koanf:"title" yaml:"title"`
	Prices []float64 `koanf:"prices" yaml:"prices"`
}

// StorageConfig selects the store backend.
type StorageConfig struct {
	// Backend is one of memory, file, sqlite, none.
	Backend string `koanf:"backend" yaml:"backend"`

	// Path is the file or database path for the file and sqlite backends.
	Path string `koanf:"path" yaml:"path,omitempty"`
}

// LogConfig configures slog.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level" yaml:"level"`

	// Format is text or json.
	Format string `koanf:"format" yaml:"format"`
}

// MetricsConfig configures Prometheus collection.
type MetricsConfig struct {
	Namespace string `koanf:"namespace" yaml:"namespace"`
	Subsystem string `koanf:"subsystem" yaml:"subsystem,omitempty"`

	// Buckets are the listener duration histogram buckets in seconds,
	// strictly increasing. Empty means the Prometheus defaults.
	Buckets []float64 `koanf:"buckets" yaml:"buckets,omitempty"`
}

// Load builds a catalog from defaults, the file at path (skipped when
// path is empty) and environment overrides, then validates it.
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")

	defaults, err := yamlv3.Marshal(Default())
	if err != nil {
		return nil, errors.New("P021").Wrap(err)
	}
	if err := k.Load(rawBytes(defaults), yaml.Parser()); err != nil {
		return nil, errors.New("P021").Wrap(err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New("P020").
					WithDetail("No catalog found at " + path).
					WithSuggestion("Run 'productpage init' to write the default catalog")
			}
			return nil, errors.New("P020").Wrap(err)
		}
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.New("P021").
				WithDetail("Failed to parse " + path).
				WithSuggestion("Check that the catalog is valid YAML or JSON").
				Wrap(err)
		}
		// Derived values follow the file's lists unless the file sets them.
		for _, key := range derivedKeys {
			if !fk.Exists(key) {
				k.Delete(key)
			}
		}
		// Lists are leaf values, so the file's lists replace the defaults.
		if err := k.Merge(fk); err != nil {
			return nil, errors.New("P021").Wrap(err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.New("P021").WithDetail("loading env overrides").Wrap(err)
	}

	cat := &Catalog{}
	if err := k.Unmarshal("", cat); err != nil {
		return nil, errors.New("P021").Wrap(err)
	}
	cat.path = path
	cat.applyDefaults()

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// derivedKeys default from other catalog values when a file omits them.
var derivedKeys = []string{"default_size", "main_image"}

// envKey maps PRODUCTPAGE_STORAGE__BACKEND to storage.backend.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// rawBytes is a koanf provider over an in-memory document.
type rawBytes []byte

func (r rawBytes) ReadBytes() ([]byte, error) { return r, nil }

func (r rawBytes) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("rawBytes provider does not support Read")
}

// Save writes the catalog to path as YAML.
func (c *Catalog) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.New("P021").WithDetail("marshalling catalog").Wrap(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog to %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path returns the path the catalog was loaded from or saved to.
func (c *Catalog) Path() string {
	return c.path
}

// applyDefaults fills in values derivable from the rest of the catalog.
func (c *Catalog) applyDefaults() {
	if c.DefaultSize == "" && len(c.Sizes) > 0 {
		c.DefaultSize = c.Sizes[0]
	}
	if c.MainImage == "" {
		switch {
		case len(c.Thumbnails) > 0:
			c.MainImage = c.Thumbnails[0].FullSrc()
		default:
			for _, s := range c.Swatches {
				if s.Image != "" {
					c.MainImage = s.Image
					break
				}
			}
		}
	}
	for i := range c.Swatches {
		if c.Swatches[i].Label == "" {
			c.Swatches[i].Label = c.Swatches[i].Color
		}
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "productpage"
	}
}

// Validate checks that the catalog can build a page.
func (c *Catalog) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New("P022").WithDetailf(format, args...)
	}

	if len(c.Sizes) == 0 {
		return invalid("at least one size is required")
	}
	if !containsString(c.Sizes, c.DefaultSize) {
		return invalid("default_size %q is not one of %v", c.DefaultSize, c.Sizes)
	}
	if len(c.Swatches) == 0 {
		return invalid("at least one swatch is required")
	}
	seen := make(map[string]bool)
	for i, s := range c.Swatches {
		if strings.TrimSpace(s.Color) == "" {
			return invalid("swatch %d has no color", i)
		}
		if seen[s.Color] {
			return invalid("duplicate swatch color %q", s.Color)
		}
		seen[s.Color] = true
	}
	for i, th := range c.Thumbnails {
		if th.Src == "" {
			return invalid("thumbnail %d has no src", i)
		}
	}
	tabIDs := make(map[string]bool)
	for i, tab := range c.Tabs {
		if tab.ID == "" {
			return invalid("tab %d has no id", i)
		}
		if tabIDs[tab.ID] {
			return invalid("duplicate tab id %q", tab.ID)
		}
		tabIDs[tab.ID] = true
	}
	for i, card := range c.Cards {
		if card.Title == "" {
			return invalid("card %d has no title", i)
		}
	}
	for i, p := range c.Bundle.Prices {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return invalid("bundle price %d must be a non-negative number", i)
		}
	}
	switch c.Storage.Backend {
	case "memory", "none":
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return invalid("storage.path is required for the %s backend", c.Storage.Backend)
		}
	default:
		return invalid("invalid storage.backend %q: must be one of memory, file, sqlite, none", c.Storage.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("invalid log.format %q: must be text or json", c.Log.Format)
	}
	for i := 1; i < len(c.Metrics.Buckets); i++ {
		if c.Metrics.Buckets[i] <= c.Metrics.Buckets[i-1] {
			return invalid("metrics.buckets must be strictly increasing")
		}
	}
	return nil
}

// FullSrc returns the full-resolution reference, falling back to Src.
func (t Thumbnail) FullSrc() string {
	if t.Full != "" {
		return t.Full
	}
	return t.Src
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
