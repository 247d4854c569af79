// Package report renders summaries and menus into the supported output
// formats and writes them through a Sink.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ovenlight/toastctl/internal/daterange"
	"github.com/ovenlight/toastctl/internal/models"
	"github.com/ovenlight/toastctl/internal/sales"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// SalesText renders the summary as a readable terminal report. The daily
// table collapses for single-day windows since it would repeat the totals.
// showAll adds the payment, discount, dining-option and order-type tables.
func SalesText(summary *models.SalesSummary, r daterange.Range, showAll bool) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString(fmt.Sprintf("SALES SUMMARY: %s\n", r))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&b, "Total Orders:      %d\n", summary.TotalOrders)
	fmt.Fprintf(&b, "Voided Orders:     %d\n", summary.VoidedOrders)
	fmt.Fprintf(&b, "Total Payments:    %d\n", summary.TotalPayments)
	fmt.Fprintf(&b, "Gross Sales:       %s\n", money(summary.GrossSales))
	fmt.Fprintf(&b, "Total Tax:         %s\n", money(summary.TotalTax))
	fmt.Fprintf(&b, "Total Discounts:   %s\n", money(summary.TotalDiscounts))
	fmt.Fprintf(&b, "Net Sales:         %s\n", money(summary.NetSales))
	fmt.Fprintf(&b, "Total Tips:        %s\n", money(summary.TotalTips))
	if summary.TotalOrders > 0 {
		fmt.Fprintf(&b, "Avg Order Value:   %s\n", money(summary.AverageOrderValue()))
	}

	if !r.SingleDay() {
		writeDailyTable(&b, summary.Daily)
	}

	if showAll {
		writePaymentTable(&b, summary.PaymentMethods)
		writeDiscountTable(&b, summary.Discounts)
		writeDiningOptionTable(&b, summary.DiningOptions)
		writeOrderTypeTable(&b, summary.OrderTypes)
	}

	return b.String()
}

func writeDailyTable(b *strings.Builder, daily map[string]*models.DayTotals) {
	dates := sortedDailyDates(daily)
	if len(dates) == 0 {
		return
	}

	b.WriteString("\nDAILY BREAKDOWN\n")
	fmt.Fprintf(b, "%-12s %8s %12s %10s %10s %10s\n",
		"Date", "Orders", "Gross", "Tips", "Tax", "Discounts")
	b.WriteString(strings.Repeat("-", 66) + "\n")
	for _, date := range dates {
		day := daily[date]
		fmt.Fprintf(b, "%-12s %8d %12s %10s %10s %10s\n",
			date, day.Orders, money(day.GrossSales), money(day.Tips),
			money(day.Tax), money(day.Discounts))
	}
}

func writePaymentTable(b *strings.Builder, methods map[string]*models.PaymentMethodTotals) {
	if len(methods) == 0 {
		return
	}
	b.WriteString("\nPAYMENT METHODS\n")
	fmt.Fprintf(b, "%-15s %8s %12s %10s\n", "Method", "Count", "Amount", "Tips")
	b.WriteString(strings.Repeat("-", 48) + "\n")
	for _, name := range sortedKeys(methods) {
		m := methods[name]
		fmt.Fprintf(b, "%-15s %8d %12s %10s\n", name, m.Count, money(m.Amount), money(m.Tips))
	}
}

func writeDiscountTable(b *strings.Builder, discounts map[string]*models.DiscountTotals) {
	if len(discounts) == 0 {
		return
	}
	b.WriteString("\nDISCOUNTS\n")
	fmt.Fprintf(b, "%-25s %8s %12s\n", "Discount", "Count", "Amount")
	b.WriteString(strings.Repeat("-", 47) + "\n")
	for _, name := range sortedKeys(discounts) {
		d := discounts[name]
		fmt.Fprintf(b, "%-25s %8d %12s\n", name, d.Count, money(d.Amount))
	}
}

func writeDiningOptionTable(b *strings.Builder, options map[string]*models.DiningOptionTotals) {
	if len(options) == 0 {
		return
	}
	b.WriteString("\nDINING OPTIONS\n")
	fmt.Fprintf(b, "%-25s %8s %12s %10s\n", "Option", "Orders", "Gross", "Tips")
	b.WriteString(strings.Repeat("-", 58) + "\n")
	for _, guid := range sortedKeys(options) {
		opt := options[guid]
		fmt.Fprintf(b, "%-25s %8d %12s %10s\n", opt.Name, opt.Count, money(opt.GrossSales), money(opt.Tips))
	}
}

func writeOrderTypeTable(b *strings.Builder, types map[string]int) {
	if len(types) == 0 {
		return
	}
	b.WriteString("\nORDER SOURCES\n")
	fmt.Fprintf(b, "%-20s %8s\n", "Source", "Orders")
	b.WriteString(strings.Repeat("-", 29) + "\n")
	for _, name := range sortedKeys(types) {
		fmt.Fprintf(b, "%-20s %8d\n", name, types[name])
	}
}

// ComparisonText renders a day-over-previous-week comparison.
func ComparisonText(c *sales.Comparison, current, previous daterange.Range) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "COMPARISON: %s vs %s\n", current, previous)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	writeDeltaRow(&b, "Gross Sales", money(c.Current.GrossSales), money(c.Previous.GrossSales), c.GrossSales(), true)
	writeDeltaRow(&b, "Tips", money(c.Current.TotalTips), money(c.Previous.TotalTips), c.Tips(), true)
	writeDeltaRow(&b, "Orders",
		fmt.Sprintf("%d", c.Current.TotalOrders),
		fmt.Sprintf("%d", c.Previous.TotalOrders),
		c.Orders(), false)
	if aov, ok := c.AverageOrderValue(); ok {
		writeDeltaRow(&b, "Avg Order Value",
			money(c.Current.AverageOrderValue()),
			money(c.Previous.AverageOrderValue()), aov, true)
	}

	names := c.PaymentMethodNames()
	if len(names) > 0 {
		sort.Strings(names)
		b.WriteString("\nPAYMENT METHODS\n")
		fmt.Fprintf(&b, "%-15s %12s %12s\n", "Method", "Current", "Previous")
		b.WriteString(strings.Repeat("-", 41) + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "%-15s %12s %12s\n", name,
				money(methodAmount(c.Current, name)), money(methodAmount(c.Previous, name)))
		}
	}
	return b.String()
}

func writeDeltaRow(b *strings.Builder, label, current, previous string, d sales.Delta, isMoney bool) {
	sign := "+"
	if d.Change.IsNegative() {
		sign = "-"
	}
	change := sign + d.Change.Abs().StringFixed(0)
	if isMoney {
		change = sign + "$" + d.Change.Abs().StringFixed(2)
	}

	pct := "n/a"
	if d.Pct != nil {
		pct = d.Pct.StringFixed(1) + "%"
		if !d.Pct.IsNegative() {
			pct = "+" + pct
		}
	}
	fmt.Fprintf(b, "%-18s %12s -> %-12s %10s (%s)\n", label+":", previous, current, change, pct)
}

func methodAmount(s *models.SalesSummary, name string) decimal.Decimal {
	if m, ok := s.PaymentMethods[name]; ok {
		return m.Amount
	}
	return decimal.Zero
}

// sortedDailyDates orders dates ascending with the unknown bucket excluded
// from rendering. Zero-order days stay in the table.
func sortedDailyDates(daily map[string]*models.DayTotals) []string {
	var dates []string
	for date := range daily {
		if date == models.UnknownDateKey {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
