package sales

import (
	"github.com/shopspring/decimal"

	"github.com/ovenlight/toastctl/internal/models"
)

// Comparison holds period-over-period deltas between two summaries.
type Comparison struct {
	Current  *models.SalesSummary
	Previous *models.SalesSummary
}

func Compare(current, previous *models.SalesSummary) *Comparison {
	return &Comparison{Current: current, Previous: previous}
}

// Delta is an absolute change plus its percent form. Pct is nil when the
// previous value was zero (no meaningful percentage).
type Delta struct {
	Change decimal.Decimal
	Pct    *decimal.Decimal
}

func newDelta(current, previous decimal.Decimal) Delta {
	d := Delta{Change: current.Sub(previous)}
	if !previous.IsZero() {
		pct := d.Change.Div(previous).Mul(decimal.NewFromInt(100))
		d.Pct = &pct
	}
	return d
}

func (c *Comparison) GrossSales() Delta {
	return newDelta(c.Current.GrossSales, c.Previous.GrossSales)
}

func (c *Comparison) Tips() Delta {
	return newDelta(c.Current.TotalTips, c.Previous.TotalTips)
}

func (c *Comparison) Orders() Delta {
	return newDelta(
		decimal.NewFromInt(int64(c.Current.TotalOrders)),
		decimal.NewFromInt(int64(c.Previous.TotalOrders)),
	)
}

// AverageOrderValue compares mean order values; valid only when both
// periods saw orders.
func (c *Comparison) AverageOrderValue() (Delta, bool) {
	if c.Current.TotalOrders == 0 || c.Previous.TotalOrders == 0 {
		return Delta{}, false
	}
	return newDelta(c.Current.AverageOrderValue(), c.Previous.AverageOrderValue()), true
}

// PaymentMethodNames returns the union of payment method keys across both
// periods.
func (c *Comparison) PaymentMethodNames() []string {
	seen := make(map[string]bool)
	var names []string
	for name := range c.Current.PaymentMethods {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range c.Previous.PaymentMethods {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
