package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// StoreRepositoryImpl implements StoreRepository interface
type StoreRepositoryImpl struct {
	*BaseRepository[models.Store, models.StoreFilter]
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &StoreRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Store](db, applyStoreFilter, "store_id ASC"),
	}
}

// ByIDWithRelations loads a store with its class, director and departments (each with its manager)
func (r *StoreRepositoryImpl) ByIDWithRelations(ctx context.Context, id uint) (*models.Store, error) {
	db := r.getDB(ctx)

	var store models.Store
	err := db.
		Preload("StoreClass").
		Preload("Director").
		Preload("Departments", func(q *gorm.DB) *gorm.DB { return q.Order("name ASC") }).
		Preload("Departments.Manager").
		First(&store, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load store %d: %w", id, err)
	}
	return &store, nil
}

func applyStoreFilter(query *gorm.DB, filter models.StoreFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("store_id = ?", *filter.ID)
	}
	if filter.StoreClassID != nil {
		query = query.Where("store_class_id = ?", *filter.StoreClassID)
	}
	if filter.DirectorID != nil {
		query = query.Where("director_id = ?", *filter.DirectorID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	return query
}
