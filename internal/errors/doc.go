// Package errors provides coded, categorized errors for the product page.
//
// Each error has a unique code (e.g., "P010") that maps to a short message,
// a longer explanation and a category. Errors wrap their cause so that
// errors.Is and errors.As keep working through them.
//
// # Error Categories
//
//   - config: the product catalog could not be loaded or is invalid
//   - markup: the page structure is missing an element the page binds to
//   - storage: the key-value store could not be opened, read or written
//   - script: a replay script could not be parsed or executed
//
// # Usage
//
//	err := errors.New("P010").
//	    WithDetail(`no element matches "#mainImage"`).
//	    WithSuggestion("Build the page with page.BuildMarkup")
package errors
