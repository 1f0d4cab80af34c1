package product

import "errors"

var ErrNotFound = errors.New("product not found")

// Product mirrors one record of the catalog document. Prices are in the
// smallest currency unit.
type Product struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Price          int64             `json:"price"`
	Image          string            `json:"image"`
	Category       string            `json:"category"`
	Colors         []string          `json:"colors,omitempty"`
	Sizes          []string          `json:"sizes,omitempty"`
	Stock          *int              `json:"stock,omitempty"`
	Rating         *float64          `json:"rating,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// InStock reports whether at least want more units can be sold. Products
// without a stock figure are treated as unlimited.
func (p Product) InStock(want int) bool {
	if p.Stock == nil {
		return true
	}
	return want <= *p.Stock
}
