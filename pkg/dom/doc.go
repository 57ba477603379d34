// Package dom provides the live element tree the product page binds to.
//
// A Document owns a tree of Elements. Elements carry attributes, a class
// list, inline styles, data-* attributes and children; the page mutates
// them from event listeners the same way browser code mutates the DOM.
//
// # Building Elements
//
// Elements are built with variadic constructors, mirroring the vdom
// builders:
//
//	img := dom.Img(dom.ID("mainImage"), dom.Src("/img/red.jpg"), dom.Alt("Red"))
//	row := dom.Div(dom.ID("thumbnailRow"),
//	    dom.Img(dom.Class("thumb", "active"), dom.Data("full", "/img/1.jpg")),
//	)
//
// # Queries
//
// QuerySelector and QuerySelectorAll accept a CSS subset: type, #id,
// .class, [attr], [attr=value], the descendant combinator and
// comma-separated groups.
//
// # Events
//
// Dispatch delivers an event to the target, then to each ancestor
// (bubbling), then to window-level listeners registered on the Document.
// Dispatch is run-to-completion: an event raised while another is being
// delivered is queued and delivered after the current one finishes.
//
// A Document is not safe for concurrent use.
package dom
