// Package sales folds raw orders into a SalesSummary. All money math uses
// exact decimals; the fold is deliberately defensive because the API can
// return null entries inside any of the nested lists.
package sales

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ovenlight/toastctl/internal/models"
)

// Aggregator summarizes orders. The dining option map is display-only; a
// missing mapping falls back to the raw GUID.
type Aggregator struct {
	diningOptions models.DiningOptionMap
}

func NewAggregator(diningOptions models.DiningOptionMap) *Aggregator {
	if diningOptions == nil {
		diningOptions = models.DiningOptionMap{}
	}
	return &Aggregator{diningOptions: diningOptions}
}

// Summarize folds orders into a summary. Nil orders are skipped; a single
// malformed order never aborts the pass.
func (a *Aggregator) Summarize(orders []*models.Order) *models.SalesSummary {
	summary := models.NewSalesSummary()
	summary.TotalOrders = len(orders)

	for _, order := range orders {
		if order == nil {
			continue
		}
		a.addOrder(summary, order)
	}

	// Tips are pass-through to staff, not revenue, so they stay out of net.
	summary.NetSales = summary.GrossSales.Sub(summary.TotalTax).Sub(summary.TotalDiscounts)
	return summary
}

func (a *Aggregator) addOrder(summary *models.SalesSummary, order *models.Order) {
	orderDate := orderDate(order)
	if _, ok := summary.Daily[orderDate]; !ok {
		summary.Daily[orderDate] = &models.DayTotals{}
	}

	orderType := order.Source
	if orderType == "" {
		orderType = "Unknown"
	}
	summary.OrderTypes[orderType]++

	// Type and dining-option counts register before the void check; a voided
	// order still occupies its channel.
	optionGUID := "Unknown"
	if order.DiningOption != nil && order.DiningOption.GUID != "" {
		optionGUID = order.DiningOption.GUID
	}
	option, ok := summary.DiningOptions[optionGUID]
	if !ok {
		option = &models.DiningOptionTotals{Name: a.diningOptions.Name(optionGUID)}
		summary.DiningOptions[optionGUID] = option
	}
	option.Count++

	if order.Voided {
		summary.VoidedOrders++
		return
	}

	for _, check := range order.Checks {
		if check == nil || check.Voided {
			continue
		}
		a.addCheck(summary, check, orderDate, optionGUID)
	}
}

func (a *Aggregator) addCheck(summary *models.SalesSummary, check *models.Check, orderDate, optionGUID string) {
	summary.TotalTax = summary.TotalTax.Add(check.TaxAmount)

	checkGross := decimal.Zero
	checkTips := decimal.Zero

	// Discounts apply at three tiers: the check itself, each live selection,
	// and each live modifier under a live selection. Void flags at every
	// tier are independent, so the walk cannot be flattened.
	checkDiscounts := a.addDiscounts(summary, check.AppliedDiscounts)
	for _, selection := range check.Selections {
		if selection == nil || selection.Voided {
			continue
		}
		checkDiscounts = checkDiscounts.Add(a.addDiscounts(summary, selection.AppliedDiscounts))
		for _, modifier := range selection.Modifiers {
			if modifier == nil || modifier.Voided {
				continue
			}
			checkDiscounts = checkDiscounts.Add(a.addDiscounts(summary, modifier.AppliedDiscounts))
		}
	}

	for _, payment := range check.Payments {
		if payment == nil || payment.Excluded() {
			continue
		}

		paymentType := payment.Type
		if paymentType == "" {
			paymentType = "Unknown"
		}

		summary.TotalPayments++
		checkGross = checkGross.Add(payment.Amount)
		checkTips = checkTips.Add(payment.TipAmount)

		method, ok := summary.PaymentMethods[paymentType]
		if !ok {
			method = &models.PaymentMethodTotals{}
			summary.PaymentMethods[paymentType] = method
		}
		method.Count++
		method.Amount = method.Amount.Add(payment.Amount)
		method.Tips = method.Tips.Add(payment.TipAmount)
	}

	summary.GrossSales = summary.GrossSales.Add(checkGross)
	summary.TotalTips = summary.TotalTips.Add(checkTips)
	summary.TotalDiscounts = summary.TotalDiscounts.Add(checkDiscounts)

	// A check that collected no payment stays out of the daily and
	// dining-option breakdowns even when it carried tax or discounts.
	if checkGross.IsPositive() {
		day := summary.Daily[orderDate]
		day.Orders++
		day.GrossSales = day.GrossSales.Add(checkGross)
		day.Tips = day.Tips.Add(checkTips)
		day.Tax = day.Tax.Add(check.TaxAmount)
		day.Discounts = day.Discounts.Add(checkDiscounts)

		if option, ok := summary.DiningOptions[optionGUID]; ok {
			option.GrossSales = option.GrossSales.Add(checkGross)
			option.Tips = option.Tips.Add(checkTips)
		}
	}
}

func (a *Aggregator) addDiscounts(summary *models.SalesSummary, discounts []*models.AppliedDiscount) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		if d == nil || d.Voided {
			continue
		}

		name := d.Name
		if name == "" {
			name = "Unknown Discount"
		}

		entry, ok := summary.Discounts[name]
		if !ok {
			entry = &models.DiscountTotals{}
			summary.Discounts[name] = entry
		}
		entry.Count++
		entry.Amount = entry.Amount.Add(d.DiscountAmount)
		total = total.Add(d.DiscountAmount)
	}
	return total
}

// orderDate extracts the calendar date from the first usable timestamp,
// preferring opened over closed over created.
func orderDate(order *models.Order) string {
	for _, stamp := range []string{order.OpenedDate, order.ClosedDate, order.CreatedDate} {
		if stamp == "" {
			continue
		}
		if i := strings.IndexByte(stamp, 'T'); i >= 0 {
			return stamp[:i]
		}
		if len(stamp) >= 10 {
			return stamp[:10]
		}
		return stamp
	}
	return models.UnknownDateKey
}
