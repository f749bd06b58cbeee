package catalog

import (
	"strings"

	"github.com/orderkart/orderkart/internal/domain"
)

// Normalize flattens a grouped raw catalog into the flat indexed model.
// Relative order is preserved: group order first, then product order within
// the group. Ids are stamped via GenerateID; colliding ids are retained
// silently and resolve to one logical product in id-keyed lookups.
func Normalize(groups []domain.RawGroup) []domain.Product {
	products := make([]domain.Product, 0, countProducts(groups))
	for _, g := range groups {
		for _, rp := range g.Products {
			products = append(products, domain.Product{
				ID:           GenerateID(g.GroupName, rp.ProductName),
				GroupName:    g.GroupName,
				ProductName:  rp.ProductName,
				Quantity:     rp.Quantity,
				Rate:         rp.Rate,
				Amount:       rp.Amount,
				ImageUrl:     rp.ImageUrl,
				SearchString: strings.ToLower(g.GroupName + " " + rp.ProductName),
			})
		}
	}
	return products
}

func countProducts(groups []domain.RawGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Products)
	}
	return n
}

// Groups rolls a flat product list back up into per-group summaries,
// preserving first-seen group order.
func Groups(products []domain.Product) []domain.GroupSummary {
	order := make([]string, 0)
	counts := make(map[string]int)
	for _, p := range products {
		if _, ok := counts[p.GroupName]; !ok {
			order = append(order, p.GroupName)
		}
		counts[p.GroupName]++
	}
	out := make([]domain.GroupSummary, 0, len(order))
	for _, name := range order {
		out = append(out, domain.GroupSummary{GroupName: name, ProductCount: counts[name]})
	}
	return out
}

// Search filters products whose SearchString contains the lowercased query.
// An empty query matches everything.
func Search(products []domain.Product, query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}
	out := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(p.SearchString, query) {
			out = append(out, p)
		}
	}
	return out
}
