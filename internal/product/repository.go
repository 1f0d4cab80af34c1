package product

import (
	"encoding/json"
	"fmt"
	"os"
)

// Repository provides read-only access to the product catalog. The catalog
// is an external document; its freshness or internal consistency is not
// validated here.
type Repository interface {
	List() []Product
	GetByID(id int) (Product, error)
}

// catalogDocument matches the shape of the catalog JSON file.
type catalogDocument struct {
	Products []Product `json:"products"`
}

// FileRepository serves the catalog from a JSON document loaded once at
// startup.
type FileRepository struct {
	products []Product
	byID     map[int]Product
}

func NewFileRepository(path string) (*FileRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	return NewInMemoryRepository(doc.Products), nil
}

// NewInMemoryRepository wraps an already loaded product slice. Used by
// FileRepository and directly by tests.
func NewInMemoryRepository(products []Product) *FileRepository {
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &FileRepository{products: products, byID: byID}
}

func (r *FileRepository) List() []Product {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *FileRepository) GetByID(id int) (Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}
