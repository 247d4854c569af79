// Package menu provides grouped and filtered views over the restaurant's
// menu data, backed by a flat-file cache so repeated commands don't hammer
// the API.
package menu

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ovenlight/toastctl/internal/models"
	"github.com/ovenlight/toastctl/internal/toast"
)

type Service struct {
	client *toast.Client
	cache  *toast.DataCache
	log    *zap.SugaredLogger
}

func NewService(client *toast.Client, cache *toast.DataCache, log *zap.SugaredLogger) *Service {
	return &Service{client: client, cache: cache, log: log}
}

// MenuData returns menu data from the cache unless forceRefresh is set, in
// which case fresh data is fetched and re-cached. A cache-save failure is
// visible but does not fail the fetch.
func (s *Service) MenuData(ctx context.Context, forceRefresh bool) (*models.MenuData, error) {
	if !forceRefresh {
		var cached models.MenuData
		if s.cache.Load(&cached) {
			return &cached, nil
		}
	}

	s.log.Debug("fetching fresh menu data")
	data, err := s.client.Menus(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Save(data); err != nil {
		s.log.Warnw("could not cache menu data", "err", err)
	}
	return data, nil
}

// GroupNames returns all distinct menu group names, sorted.
func (s *Service) GroupNames(ctx context.Context, forceRefresh bool) ([]string, error) {
	data, err := s.MenuData(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	return GroupNames(data), nil
}

// GroupNames lists distinct group names across all menus, sorted.
func GroupNames(data *models.MenuData) []string {
	seen := make(map[string]bool)
	var names []string
	for _, menu := range data.Menus {
		for _, group := range menu.Groups {
			if group.Name != "" && !seen[group.Name] {
				seen[group.Name] = true
				names = append(names, group.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// GroupedItem is a menu item prepared for rendering.
type GroupedItem struct {
	Name           string
	Price          *decimal.Decimal
	FormattedPrice string
}

// GroupedItems organizes items by group, honoring the caller's group order.
// include3pd selects third-party-delivery menus (and requires partner
// visibility on the group); otherwise 3pd menus are excluded. Menus on the
// skip list never contribute.
func GroupedItems(data *models.MenuData, groupOrder []string, include3pd, includePrices bool) map[string][]GroupedItem {
	wanted := make(map[string]bool, len(groupOrder))
	for _, name := range groupOrder {
		wanted[name] = true
	}

	grouped := make(map[string][]GroupedItem)
	for _, menu := range data.Menus {
		if menu.IsThirdParty() != include3pd || menu.ShouldSkip() {
			continue
		}
		for _, group := range menu.Groups {
			if !wanted[group.Name] {
				continue
			}
			if include3pd && !group.VisibleToPartners() {
				continue
			}
			for _, item := range group.Items {
				gi := GroupedItem{Name: item.Name}
				if includePrices {
					gi.Price = item.Price
					gi.FormattedPrice = item.FormattedPrice()
				}
				grouped[group.Name] = append(grouped[group.Name], gi)
			}
		}
	}
	return grouped
}

// SearchResult locates an item within its group and menu.
type SearchResult struct {
	Item  *models.MenuItem
	Group string
	Menu  string
}

// Search finds items whose name contains term, case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]SearchResult, error) {
	data, err := s.MenuData(ctx, false)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	var results []SearchResult
	for _, menu := range data.Menus {
		for _, group := range menu.Groups {
			for _, item := range group.Items {
				if strings.Contains(strings.ToLower(item.Name), needle) {
					results = append(results, SearchResult{Item: item, Group: group.Name, Menu: menu.Name})
				}
			}
		}
	}
	return results, nil
}

// PricingStats summarizes the price distribution of priced items, skipping
// menus on the skip list.
type PricingStats struct {
	Count   int
	Average decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
	Bands   []PriceBand
}

type PriceBand struct {
	Label string
	Count int
}

var priceBands = []struct {
	label     string
	min, max  decimal.Decimal
	unbounded bool
}{
	{label: "Under $10", min: decimal.Zero, max: decimal.NewFromInt(10)},
	{label: "$10 - $20", min: decimal.NewFromInt(10), max: decimal.NewFromInt(20)},
	{label: "$20 - $30", min: decimal.NewFromInt(20), max: decimal.NewFromInt(30)},
	{label: "Over $30", min: decimal.NewFromInt(30), unbounded: true},
}

// Pricing computes pricing statistics; ok is false when no priced items
// exist.
func Pricing(data *models.MenuData) (PricingStats, bool) {
	var prices []decimal.Decimal
	for _, menu := range data.Menus {
		if menu.ShouldSkip() {
			continue
		}
		for _, group := range menu.Groups {
			for _, item := range group.Items {
				if item.Price != nil {
					prices = append(prices, *item.Price)
				}
			}
		}
	}
	if len(prices) == 0 {
		return PricingStats{}, false
	}

	stats := PricingStats{Count: len(prices), Min: prices[0], Max: prices[0]}
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
		if p.LessThan(stats.Min) {
			stats.Min = p
		}
		if p.GreaterThan(stats.Max) {
			stats.Max = p
		}
	}
	stats.Average = sum.Div(decimal.NewFromInt(int64(len(prices))))

	for _, band := range priceBands {
		count := 0
		for _, p := range prices {
			if p.GreaterThanOrEqual(band.min) && (band.unbounded || p.LessThan(band.max)) {
				count++
			}
		}
		stats.Bands = append(stats.Bands, PriceBand{Label: band.label, Count: count})
	}
	return stats, true
}

// Pricing fetches menu data and computes pricing stats.
func (s *Service) Pricing(ctx context.Context) (PricingStats, bool, error) {
	data, err := s.MenuData(ctx, false)
	if err != nil {
		return PricingStats{}, false, err
	}
	stats, ok := Pricing(data)
	return stats, ok, nil
}

// ClearCache removes the cached menu payload.
func (s *Service) ClearCache() error {
	return s.cache.Clear()
}
