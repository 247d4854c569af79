package models

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Order is a customer transaction as returned by /orders/v2/ordersBulk.
// Orders are read-only snapshots; nothing in this tool mutates them.
type Order struct {
	GUID         string     `json:"guid"`
	Source       string     `json:"source"`
	Voided       bool       `json:"voided"`
	OpenedDate   string     `json:"openedDate"`
	ClosedDate   string     `json:"closedDate"`
	CreatedDate  string     `json:"createdDate"`
	DiningOption *EntityRef `json:"diningOption"`
	Checks       []*Check   `json:"checks"`
}

// EntityRef is a GUID reference to a config entity (dining option etc).
type EntityRef struct {
	GUID string `json:"guid"`
}

// Check is a bill within an order, potentially settled by several payments.
type Check struct {
	GUID             string             `json:"guid"`
	Voided           bool               `json:"voided"`
	TaxAmount        decimal.Decimal    `json:"taxAmount"`
	AppliedDiscounts []*AppliedDiscount `json:"appliedDiscounts"`
	Selections       []*Selection       `json:"selections"`
	Payments         []*Payment         `json:"payments"`
}

// Selection is an ordered menu item line within a check.
type Selection struct {
	Voided           bool               `json:"voided"`
	AppliedDiscounts []*AppliedDiscount `json:"appliedDiscounts"`
	Modifiers        []*Modifier        `json:"modifiers"`
}

// Modifier is an add-on beneath a selection; it can carry its own discounts.
type Modifier struct {
	Voided           bool               `json:"voided"`
	AppliedDiscounts []*AppliedDiscount `json:"appliedDiscounts"`
}

// PaymentStatusOpen marks a payment still being captured. A voided payment
// whose status is OPEN is treated as valid; the upstream status model flags
// in-flight payments as voided before they settle.
const PaymentStatusOpen = "OPEN"

// Payment is a monetary settlement on a check. Amounts are in dollars.
type Payment struct {
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	TipAmount     decimal.Decimal `json:"tipAmount"`
	Voided        bool            `json:"voided"`
	PaymentStatus string          `json:"paymentStatus"`
}

// Excluded reports whether the payment must be left out of totals.
func (p *Payment) Excluded() bool {
	return p.Voided && p.PaymentStatus != PaymentStatusOpen
}

type AppliedDiscount struct {
	Name           string          `json:"name"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Voided         bool            `json:"voided"`
}

// DiningOption is an entry from /config/v2/diningOptions.
type DiningOption struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

// DiningOptionMap maps dining option GUIDs to display names.
type DiningOptionMap map[string]string

// Name returns the display name for a GUID, falling back to the GUID itself.
func (m DiningOptionMap) Name(guid string) string {
	if name, ok := m[guid]; ok {
		return name
	}
	return guid
}

// LoadOrdersFromFile reads previously saved orders for offline analysis.
// Accepts a bare array, or an object wrapping the array under "orders" or
// "data".
func LoadOrdersFromFile(path string) ([]*Order, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read orders file: %w", err)
	}

	var orders []*Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}

	var wrapped struct {
		Orders []*Order `json:"orders"`
		Data   []*Order `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected JSON shape in %s: %w", path, err)
	}
	if wrapped.Orders != nil {
		return wrapped.Orders, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("no orders found in %s", path)
}
