package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MenuData is the payload of /menus/v2/menus.
type MenuData struct {
	Menus []*Menu `json:"menus"`
}

type Menu struct {
	GUID       string       `json:"guid"`
	Name       string       `json:"name"`
	MasterMenu bool         `json:"masterMenu"`
	Groups     []*MenuGroup `json:"menuGroups"`
}

type MenuGroup struct {
	GUID       string      `json:"guid"`
	Name       string      `json:"name"`
	Visibility []string    `json:"visibility"`
	Items      []*MenuItem `json:"menuItems"`
}

type MenuItem struct {
	GUID        string           `json:"guid"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// visibilityOrderingPartners marks groups exposed to third-party delivery
// channels.
const visibilityOrderingPartners = "ORDERING_PARTNERS"

// menuSkipTerms name menus that never belong on a takeout menu.
var menuSkipTerms = []string{"owner", "otter", "happy", "beer", "catering", "weekend"}

// IsThirdParty reports whether this menu targets third-party delivery,
// distinguished by the "3pd" naming convention.
func (m *Menu) IsThirdParty() bool {
	return strings.Contains(strings.ToLower(m.Name), "3pd")
}

// ShouldSkip reports whether the menu is excluded from generated output.
func (m *Menu) ShouldSkip() bool {
	lower := strings.ToLower(m.Name)
	for _, term := range menuSkipTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// VisibleToPartners reports whether the group is exposed to ordering
// partners.
func (g *MenuGroup) VisibleToPartners() bool {
	for _, v := range g.Visibility {
		if v == visibilityOrderingPartners {
			return true
		}
	}
	return false
}

// FormattedPrice renders the item price as "$X.XX", or "" when unpriced.
func (i *MenuItem) FormattedPrice() string {
	if i.Price == nil {
		return ""
	}
	return "$" + i.Price.StringFixed(2)
}
