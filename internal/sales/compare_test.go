package sales

import (
	"testing"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenlight/toastctl/internal/models"
)

func TestCompareDeltas(t *testing.T) {
	current := models.NewSalesSummary()
	current.GrossSales = d("120.00")
	current.TotalTips = d("10.00")
	current.TotalOrders = 12

	previous := models.NewSalesSummary()
	previous.GrossSales = d("100.00")
	previous.TotalTips = d("20.00")
	previous.TotalOrders = 10

	c := Compare(current, previous)

	gross := c.GrossSales()
	assert.True(t, gross.Change.Equal(d("20.00")))
	require.NotNil(t, gross.Pct)
	assert.True(t, gross.Pct.Equal(d("20")))

	tips := c.Tips()
	assert.True(t, tips.Change.Equal(d("-10.00")))
	require.NotNil(t, tips.Pct)
	assert.True(t, tips.Pct.Equal(d("-50")))

	aov, ok := c.AverageOrderValue()
	require.True(t, ok)
	assert.True(t, aov.Change.Equal(d("0")))
}

func TestComparePctNilWhenPreviousZero(t *testing.T) {
	current := models.NewSalesSummary()
	current.GrossSales = d("50.00")
	previous := models.NewSalesSummary()

	delta := Compare(current, previous).GrossSales()
	assert.True(t, delta.Change.Equal(d("50.00")))
	assert.Nil(t, delta.Pct)
}

func TestCompareAOVRequiresOrdersBothPeriods(t *testing.T) {
	current := models.NewSalesSummary()
	current.TotalOrders = 5
	previous := models.NewSalesSummary()

	_, ok := Compare(current, previous).AverageOrderValue()
	assert.False(t, ok)
}

func TestComparePaymentMethodNamesUnion(t *testing.T) {
	current := models.NewSalesSummary()
	current.PaymentMethods["CREDIT"] = &models.PaymentMethodTotals{}
	previous := models.NewSalesSummary()
	previous.PaymentMethods["CASH"] = &models.PaymentMethodTotals{}
	previous.PaymentMethods["CREDIT"] = &models.PaymentMethodTotals{}

	names := Compare(current, previous).PaymentMethodNames()
	assert.ElementsMatch(t, []string{"CREDIT", "CASH"}, names)
}

// TestSummarizeRandomOrdersBalances checks the gross/tips ledger over a
// randomized batch: the summary totals must equal the sum over every counted
// payment.
func TestSummarizeRandomOrdersBalances(t *testing.T) {
	f := faker.New()

	var orders []*models.Order
	for i := 0; i < 50; i++ {
		order := &models.Order{
			GUID:       f.UUID().V4(),
			Source:     f.RandomStringElement([]string{"In Store", "Online", "API"}),
			Voided:     f.Bool(),
			OpenedDate: "2025-03-10T12:00:00.000+0000",
		}
		checks := f.IntBetween(0, 3)
		for j := 0; j < checks; j++ {
			check := &models.Check{Voided: f.Bool()}
			payments := f.IntBetween(0, 3)
			for k := 0; k < payments; k++ {
				check.Payments = append(check.Payments, &models.Payment{
					Type:      f.RandomStringElement([]string{"CASH", "CREDIT"}),
					Amount:    d(f.RandomStringElement([]string{"5.00", "12.50", "30.25"})),
					TipAmount: d(f.RandomStringElement([]string{"0", "1.00", "3.75"})),
				})
			}
			order.Checks = append(order.Checks, check)
		}
		orders = append(orders, order)
	}

	summary := NewAggregator(nil).Summarize(orders)

	wantGross := d("0")
	wantTips := d("0")
	counted := 0
	for _, order := range orders {
		if order.Voided {
			continue
		}
		for _, check := range order.Checks {
			if check.Voided {
				continue
			}
			for _, p := range check.Payments {
				if p.Excluded() {
					continue
				}
				wantGross = wantGross.Add(p.Amount)
				wantTips = wantTips.Add(p.TipAmount)
				counted++
			}
		}
	}

	assert.Equal(t, len(orders), summary.TotalOrders)
	assert.Equal(t, counted, summary.TotalPayments)
	assert.True(t, summary.GrossSales.Equal(wantGross), "gross %s want %s", summary.GrossSales, wantGross)
	assert.True(t, summary.TotalTips.Equal(wantTips))
	assert.True(t, summary.NetSales.Equal(wantGross.Sub(summary.TotalTax).Sub(summary.TotalDiscounts)))
}
