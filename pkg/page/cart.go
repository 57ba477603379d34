package page

import (
	"context"
	"fmt"
	"math"

	"github.com/vango-dev/productpage/pkg/dom"
	"github.com/vango-dev/productpage/pkg/notify"
)

// Cart runs the demo cart actions. Nothing is added anywhere; each action
// only acknowledges through the notifier.
type Cart struct {
	state    *State
	notifier notify.Notifier
	total    *dom.Element
}

// NewCart creates a Cart that reads the selection from state and the
// bundle total from total.
func NewCart(state *State, notifier notify.Notifier, total *dom.Element) *Cart {
	return &Cart{state: state, notifier: notifier, total: total}
}

// SetBundle writes the formatted sum of prices into the bundle total.
func (c *Cart) SetBundle(prices []float64) {
	c.total.SetText(BundleTotal(prices))
}

// AddToCart acknowledges the current selection.
func (c *Cart) AddToCart(ctx context.Context) {
	notify.Success(ctx, c.notifier, fmt.Sprintf("Added to cart: %s / %s",
		orPlaceholder(c.state.Color), orPlaceholder(c.state.Size)))
}

// AddBundle acknowledges the bundle with its displayed total.
func (c *Cart) AddBundle(ctx context.Context) {
	notify.Success(ctx, c.notifier, "Bundle added. Total "+c.total.TextContent())
}

// AddCard acknowledges the pairing card enclosing el, named by its h4.
func (c *Cart) AddCard(ctx context.Context, el *dom.Element) error {
	card := el.Closest(".card")
	if card == nil {
		return fmt.Errorf("add card: %s is not inside a .card", el.Selector())
	}
	title := card.QuerySelector("h4")
	if title == nil {
		return fmt.Errorf("add card: %s has no title", card.Selector())
	}
	notify.Success(ctx, c.notifier, title.TextContent()+" added to cart")
	return nil
}

// BundleTotal sums prices in cents and formats the result with two
// decimals, e.g. "$75.00".
func BundleTotal(prices []float64) string {
	var cents int64
	for _, p := range prices {
		cents += toCents(p)
	}
	return FormatPrice(cents)
}

// FormatPrice formats an amount in cents as "$<units>.<cents>".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
