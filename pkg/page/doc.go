// Package page implements the interaction layer of a product display page.
//
// A Page binds a set of components to a dom.Document:
//
//   - Gallery: thumbnail clicks swap the main image; clicking the main
//     image (or pressing Enter on it) toggles zoom.
//   - Selector: color and size selection, mirrored into the swatches, the
//     variant label and a storage.Store, restored on the next mount.
//   - Modals: the size chart and compare dialogs, closed by their close
//     button, a click on the backdrop or the Escape key.
//   - Compare: rebuilds a swatch picker in the compare dialog and previews
//     up to MaxCompare picked colors.
//   - Tabs: shows one content pane at a time.
//   - Cart: demo acknowledgments through a notify.Notifier.
//
// Components do not call each other. They share the document and one State.
//
// # Usage
//
//	cat, _ := config.Load("product.yaml")
//	p, err := page.New(cat, page.Options{
//	    Store:    storage.NewMemory(nil),
//	    Notifier: notify.NewWriter(os.Stdout),
//	})
//	if err != nil {
//	    return err
//	}
//	doc := p.Document()
//	doc.Click(ctx, doc.QuerySelector(`.swatch[data-color="Red"]`))
//	fmt.Println(p.State().Label()) // "Red - M"
//
// The selection logic (Selector, Gallery) is written against small view
// interfaces, so it can be driven without a document at all.
package page
