package product

import (
	"sort"
	"strings"
)

// Service provides catalog queries for the handlers and the cart.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

// Search filters the catalog by a case-insensitive name match and an exact
// category. Empty arguments match everything.
func (s *Service) Search(query, category string) []Product {
	products := s.repo.List()
	if query == "" && category == "" {
		return products
	}

	query = strings.ToLower(query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct category names in the catalog, sorted.
func (s *Service) Categories() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range s.repo.List() {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// Page slices a product list for one page. Pages are 1-based; an
// out-of-range page yields an empty slice.
func Page(products []Product, page, limit int) []Product {
	if page < 1 || limit < 1 {
		return []Product{}
	}
	start := (page - 1) * limit
	if start >= len(products) {
		return []Product{}
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
