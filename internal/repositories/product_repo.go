package repositories

import (
	"shopnow/internal/models"
)

// ProductFilter narrows and pages a catalog listing.
type ProductFilter struct {
	Category string // empty or "all" means no category filter
	Search   string // case-insensitive substring over name and description
	Page     int    // 1-based; values < 1 are treated as 1
	Limit    int    // values < 1 fall back to 20
}

// Normalize returns the filter with page and limit clamped to usable values.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	return f
}

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	Categories() ([]string, error)
	Count() (int64, error)
	ReplaceAll(products []models.Product) error
}
