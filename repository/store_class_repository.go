package repository

import (
	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// StoreClassRepositoryImpl implements StoreClassRepository interface
type StoreClassRepositoryImpl struct {
	*BaseRepository[models.StoreClass, models.StoreClassFilter]
}

// NewStoreClassRepository creates a new store class repository
func NewStoreClassRepository(db *gorm.DB) StoreClassRepository {
	return &StoreClassRepositoryImpl{
		BaseRepository: NewBaseRepository[models.StoreClass](db, applyStoreClassFilter, "store_class_id ASC"),
	}
}

func applyStoreClassFilter(query *gorm.DB, filter models.StoreClassFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("store_class_id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	return query
}
