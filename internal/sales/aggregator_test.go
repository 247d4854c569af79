package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenlight/toastctl/internal/models"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func payment(method, amount, tip string) *models.Payment {
	return &models.Payment{Type: method, Amount: d(amount), TipAmount: d(tip)}
}

func simpleOrder(checks ...*models.Check) *models.Order {
	return &models.Order{
		GUID:       "order-1",
		Source:     "In Store",
		OpenedDate: "2025-03-10T18:32:00.000+0000",
		Checks:     checks,
	}
}

func TestSummarizeBasics(t *testing.T) {
	order := simpleOrder(&models.Check{
		TaxAmount: d("3.00"),
		AppliedDiscounts: []*models.AppliedDiscount{
			{Name: "Happy Hour", DiscountAmount: d("2.00")},
		},
		Payments: []*models.Payment{payment("CREDIT", "20.00", "4.00")},
	})

	summary := NewAggregator(nil).Summarize([]*models.Order{order})

	assert.Equal(t, 1, summary.TotalOrders)
	assert.Equal(t, 1, summary.TotalPayments)
	assert.True(t, summary.GrossSales.Equal(d("20.00")), "gross %s", summary.GrossSales)
	assert.True(t, summary.TotalTax.Equal(d("3.00")))
	assert.True(t, summary.TotalDiscounts.Equal(d("2.00")))
	assert.True(t, summary.NetSales.Equal(d("15.00")), "net %s", summary.NetSales)
	assert.True(t, summary.TotalTips.Equal(d("4.00")))

	credit := summary.PaymentMethods["CREDIT"]
	require.NotNil(t, credit)
	assert.Equal(t, 1, credit.Count)
	assert.True(t, credit.Amount.Equal(d("20.00")))

	day := summary.Daily["2025-03-10"]
	require.NotNil(t, day)
	assert.Equal(t, 1, day.Orders)
	assert.True(t, day.GrossSales.Equal(d("20.00")))
}

func TestVoidedOrderCountsButContributesNothing(t *testing.T) {
	voided := simpleOrder(&models.Check{
		Payments: []*models.Payment{payment("CASH", "50.00", "0")},
	})
	voided.Voided = true

	summary := NewAggregator(nil).Summarize([]*models.Order{voided})

	assert.Equal(t, 1, summary.TotalOrders)
	assert.Equal(t, 1, summary.VoidedOrders)
	assert.True(t, summary.GrossSales.IsZero())
	// The void registers in the source breakdown before the check walk.
	assert.Equal(t, 1, summary.OrderTypes["In Store"])
}

func TestVoidedCheckSkipped(t *testing.T) {
	order := simpleOrder(
		&models.Check{Voided: true, TaxAmount: d("9.99"), Payments: []*models.Payment{payment("CASH", "99.00", "0")}},
		&models.Check{Payments: []*models.Payment{payment("CASH", "10.00", "0")}},
	)

	summary := NewAggregator(nil).Summarize([]*models.Order{order})

	assert.True(t, summary.GrossSales.Equal(d("10.00")))
	assert.True(t, summary.TotalTax.IsZero())
}

func TestVoidedOpenPaymentStillCounts(t *testing.T) {
	// A voided payment whose status is still OPEN is in flight, not dead.
	open := payment("CREDIT", "12.00", "2.00")
	open.Voided = true
	open.PaymentStatus = "OPEN"

	closed := payment("CASH", "30.00", "0")
	closed.Voided = true
	closed.PaymentStatus = "CLOSED"

	order := simpleOrder(&models.Check{Payments: []*models.Payment{open, closed}})
	summary := NewAggregator(nil).Summarize([]*models.Order{order})

	assert.Equal(t, 1, summary.TotalPayments)
	assert.True(t, summary.GrossSales.Equal(d("12.00")))
	assert.True(t, summary.TotalTips.Equal(d("2.00")))
	_, hasCash := summary.PaymentMethods["CASH"]
	assert.False(t, hasCash)
}

func TestDiscountTiers(t *testing.T) {
	order := simpleOrder(&models.Check{
		AppliedDiscounts: []*models.AppliedDiscount{
			{Name: "Check Discount", DiscountAmount: d("1.00")},
		},
		Selections: []*models.Selection{
			{
				AppliedDiscounts: []*models.AppliedDiscount{
					{Name: "Item Discount", DiscountAmount: d("2.00")},
				},
				Modifiers: []*models.Modifier{
					{AppliedDiscounts: []*models.AppliedDiscount{
						{Name: "Modifier Discount", DiscountAmount: d("0.50")},
					}},
					{Voided: true, AppliedDiscounts: []*models.AppliedDiscount{
						{Name: "Dead Modifier", DiscountAmount: d("9.00")},
					}},
				},
			},
			{
				Voided: true,
				AppliedDiscounts: []*models.AppliedDiscount{
					{Name: "Dead Item", DiscountAmount: d("5.00")},
				},
			},
		},
		Payments: []*models.Payment{payment("CASH", "10.00", "0")},
	})

	summary := NewAggregator(nil).Summarize([]*models.Order{order})

	// Voided selection and modifier tiers contribute nothing.
	assert.True(t, summary.TotalDiscounts.Equal(d("3.50")), "discounts %s", summary.TotalDiscounts)
	assert.Len(t, summary.Discounts, 3)
	assert.NotContains(t, summary.Discounts, "Dead Item")
	assert.NotContains(t, summary.Discounts, "Dead Modifier")
}

func TestVoidedDiscountSkipped(t *testing.T) {
	order := simpleOrder(&models.Check{
		AppliedDiscounts: []*models.AppliedDiscount{
			{Name: "Live", DiscountAmount: d("1.00")},
			{Name: "Dead", DiscountAmount: d("4.00"), Voided: true},
		},
		Payments: []*models.Payment{payment("CASH", "10.00", "0")},
	})

	summary := NewAggregator(nil).Summarize([]*models.Order{order})
	assert.True(t, summary.TotalDiscounts.Equal(d("1.00")))
}

func TestZeroGrossCheckStaysOutOfBreakdowns(t *testing.T) {
	order := simpleOrder(&models.Check{
		TaxAmount: d("1.25"),
		AppliedDiscounts: []*models.AppliedDiscount{
			{Name: "Comp", DiscountAmount: d("10.00")},
		},
	})
	order.DiningOption = &models.EntityRef{GUID: "opt-1"}

	summary := NewAggregator(models.DiningOptionMap{"opt-1": "Dine In"}).Summarize([]*models.Order{order})

	// Tax and discounts still accumulate at the summary level.
	assert.True(t, summary.TotalTax.Equal(d("1.25")))
	assert.True(t, summary.TotalDiscounts.Equal(d("10.00")))

	day := summary.Daily["2025-03-10"]
	require.NotNil(t, day)
	assert.Equal(t, 0, day.Orders)
	assert.True(t, day.Tax.IsZero())

	option := summary.DiningOptions["opt-1"]
	require.NotNil(t, option)
	assert.Equal(t, "Dine In", option.Name)
	assert.Equal(t, 1, option.Count)
	assert.True(t, option.GrossSales.IsZero())
}

func TestDiningOptionNameFallsBackToGUID(t *testing.T) {
	order := simpleOrder(&models.Check{
		Payments: []*models.Payment{payment("CASH", "5.00", "0")},
	})
	order.DiningOption = &models.EntityRef{GUID: "mystery-guid"}

	summary := NewAggregator(nil).Summarize([]*models.Order{order})

	option := summary.DiningOptions["mystery-guid"]
	require.NotNil(t, option)
	assert.Equal(t, "mystery-guid", option.Name)
}

func TestNilEntriesIgnored(t *testing.T) {
	order := simpleOrder(&models.Check{
		AppliedDiscounts: []*models.AppliedDiscount{nil},
		Selections:       []*models.Selection{nil},
		Payments:         []*models.Payment{nil, payment("CASH", "8.00", "0")},
	})
	order.Checks = append(order.Checks, nil)

	summary := NewAggregator(nil).Summarize([]*models.Order{nil, order})

	assert.Equal(t, 2, summary.TotalOrders)
	assert.True(t, summary.GrossSales.Equal(d("8.00")))
}

func TestOrderDateFallback(t *testing.T) {
	order := &models.Order{
		ClosedDate: "2025-03-11T02:10:00.000+0000",
		Checks: []*models.Check{
			{Payments: []*models.Payment{payment("CASH", "5.00", "0")}},
		},
	}

	summary := NewAggregator(nil).Summarize([]*models.Order{order})
	assert.Contains(t, summary.Daily, "2025-03-11")

	noDates := &models.Order{Checks: []*models.Check{
		{Payments: []*models.Payment{payment("CASH", "5.00", "0")}},
	}}
	summary = NewAggregator(nil).Summarize([]*models.Order{noDates})
	assert.Contains(t, summary.Daily, models.UnknownDateKey)
}

func TestAverageOrderValue(t *testing.T) {
	summary := models.NewSalesSummary()
	assert.True(t, summary.AverageOrderValue().IsZero())

	summary.TotalOrders = 4
	summary.GrossSales = d("100.00")
	assert.True(t, summary.AverageOrderValue().Equal(d("25.00")))
}
