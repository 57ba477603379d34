// Package vtest provides testing helpers for product pages.
//
// The vtest package reduces boilerplate when testing page behavior by
// mounting a page over an in-memory store and a notification recorder, and
// by driving it with selectors instead of element lookups.
//
// # Quick Start
//
//	func TestAddToCart(t *testing.T) {
//	    p := vtest.New(t)
//	    p.Click(`.swatch[data-color="Red"]`)
//	    p.Click("#addToCartBtn")
//	    vtest.ExpectNotification(t, p, "Added to cart: Red / M")
//	}
//
// # Options
//
//	p := vtest.New(t,
//	    vtest.WithCatalog(cat),
//	    vtest.WithStore(storage.NewMemory(map[string]string{"selectedColor": "Navy"})),
//	)
//
// # Reloads
//
// SimulateReload mounts a fresh page over the same store, the way a
// browser reload keeps local storage:
//
//	p.Click(`.swatch[data-color="Red"]`)
//	p.SimulateReload()
//	vtest.ExpectText(t, p, "#selVariant", "Red - M")
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, p.Query("#comparePreview"), "compare-block")
//	vtest.ExpectAttribute(t, p.Query("#sizeChartModal"), "aria-hidden", "false")
package vtest
