package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// DepartmentRepositoryImpl implements DepartmentRepository interface
type DepartmentRepositoryImpl struct {
	*BaseRepository[models.Department, models.DepartmentFilter]
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &DepartmentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Department](db, applyDepartmentFilter, "department_id ASC"),
	}
}

// ByIDWithRelations loads a department with its store, manager and stocked products
func (r *DepartmentRepositoryImpl) ByIDWithRelations(ctx context.Context, id uint) (*models.Department, error) {
	db := r.getDB(ctx)

	var dep models.Department
	err := db.
		Preload("Store").
		Preload("Manager").
		Preload("DepartmentProducts", func(q *gorm.DB) *gorm.DB { return q.Order("article ASC") }).
		Preload("DepartmentProducts.Product").
		First(&dep, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load department %d: %w", id, err)
	}
	return &dep, nil
}

// ListByStore returns the departments of a store with their managers, ordered by name
func (r *DepartmentRepositoryImpl) ListByStore(ctx context.Context, storeID uint) ([]*models.Department, error) {
	var departments []*models.Department
	err := applyDepartmentFilter(r.getDB(ctx), models.DepartmentFilter{StoreID: &storeID}).
		Preload("Manager").
		Order("name ASC, department_id ASC").
		Find(&departments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list departments of store %d: %w", storeID, err)
	}
	return departments, nil
}

func applyDepartmentFilter(query *gorm.DB, filter models.DepartmentFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("department_id = ?", *filter.ID)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.ManagerID != nil {
		query = query.Where("manager_id = ?", *filter.ManagerID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	return query
}
