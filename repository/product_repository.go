package repository

import (
	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// ProductRepositoryImpl implements ProductRepository interface
type ProductRepositoryImpl struct {
	*BaseRepository[models.Product, models.ProductFilter]
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Product](db, applyProductFilter, "article ASC"),
	}
}

func applyProductFilter(query *gorm.DB, filter models.ProductFilter) *gorm.DB {
	if filter.Article != nil {
		query = query.Where("article = ?", *filter.Article)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Sort != nil {
		query = query.Where("sort = ?", *filter.Sort)
	}
	return query
}
