package models

import "github.com/shopspring/decimal"

// UnknownDateKey buckets orders with no usable timestamp. It is kept out of
// the rendered daily table but still exists in the Daily map.
const UnknownDateKey = "Unknown"

// SalesSummary is the aggregate produced by folding a slice of orders.
// All monetary fields are exact decimals; see internal/sales for the fold.
type SalesSummary struct {
	TotalOrders    int             `json:"total_orders"`
	VoidedOrders   int             `json:"voided_orders"`
	TotalPayments  int             `json:"total_payments"`
	GrossSales     decimal.Decimal `json:"gross_sales"`
	NetSales       decimal.Decimal `json:"net_sales"`
	TotalTips      decimal.Decimal `json:"total_tips"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`

	Daily          map[string]*DayTotals          `json:"daily_breakdown"`
	PaymentMethods map[string]*PaymentMethodTotals `json:"payment_breakdown"`
	Discounts      map[string]*DiscountTotals      `json:"discount_breakdown"`
	DiningOptions  map[string]*DiningOptionTotals  `json:"dining_options"`
	OrderTypes     map[string]int                  `json:"order_types"`
}

type DayTotals struct {
	Orders     int             `json:"orders"`
	GrossSales decimal.Decimal `json:"gross_sales"`
	Tips       decimal.Decimal `json:"tips"`
	Tax        decimal.Decimal `json:"tax"`
	Discounts  decimal.Decimal `json:"discounts"`
}

type PaymentMethodTotals struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Tips   decimal.Decimal `json:"tips"`
}

type DiscountTotals struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type DiningOptionTotals struct {
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	GrossSales decimal.Decimal `json:"gross_sales"`
	Tips       decimal.Decimal `json:"tips"`
}

// NewSalesSummary returns a summary with all maps initialised.
func NewSalesSummary() *SalesSummary {
	return &SalesSummary{
		Daily:          make(map[string]*DayTotals),
		PaymentMethods: make(map[string]*PaymentMethodTotals),
		Discounts:      make(map[string]*DiscountTotals),
		DiningOptions:  make(map[string]*DiningOptionTotals),
		OrderTypes:     make(map[string]int),
	}
}

// AverageOrderValue returns gross sales divided by order count, zero when
// there are no orders.
func (s *SalesSummary) AverageOrderValue() decimal.Decimal {
	if s.TotalOrders == 0 {
		return decimal.Zero
	}
	return s.GrossSales.Div(decimal.NewFromInt(int64(s.TotalOrders)))
}
