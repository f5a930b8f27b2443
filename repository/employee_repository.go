package repository

import (
	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// EmployeeRepositoryImpl implements EmployeeRepository interface
type EmployeeRepositoryImpl struct {
	*BaseRepository[models.Employee, models.EmployeeFilter]
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &EmployeeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Employee](db, applyEmployeeFilter, "last_name ASC, first_name ASC"),
	}
}

func applyEmployeeFilter(query *gorm.DB, filter models.EmployeeFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("employee_id = ?", *filter.ID)
	}
	if filter.LastName != nil {
		query = query.Where("last_name = ?", *filter.LastName)
	}
	return query
}
