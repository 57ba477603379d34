// Package notify provides acknowledgment notifications for the product page.
//
// Cart demo actions end in a blocking acknowledgment ("Added to cart: Red /
// M"). Components never talk to a concrete dialog; they call a Notifier,
// and the embedding program chooses where notifications go:
//
//	rec := &notify.Recorder{}           // tests
//	log := notify.NewLogger(slog.Default()) // structured logs
//	out := notify.NewWriter(os.Stdout)  // CLI replay output
//
//	notify.Success(ctx, notify.Multi{rec, out}, "Bundle added. Total $75.00")
//
// With title:
//
//	notify.WithTitle(ctx, n, notify.LevelInfo, "Cart", "Socks added to cart")
package notify
