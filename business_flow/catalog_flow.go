package businessflow

import (
	"context"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/models"
	"github.com/amirphl/retail-inventory/repository"
)

// CatalogFlow navigates stores and departments together with their related rows
type CatalogFlow interface {
	GetStore(ctx context.Context, id uint) (*dto.StoreDTO, error)
	GetDepartment(ctx context.Context, id uint) (*dto.DepartmentDTO, error)
	ListDepartments(ctx context.Context, storeID uint) ([]dto.DepartmentSummaryDTO, error)
}

// CatalogFlowImpl implements CatalogFlow
type CatalogFlowImpl struct {
	storeRepo      repository.StoreRepository
	departmentRepo repository.DepartmentRepository
}

func NewCatalogFlow(storeRepo repository.StoreRepository, departmentRepo repository.DepartmentRepository) CatalogFlow {
	return &CatalogFlowImpl{storeRepo: storeRepo, departmentRepo: departmentRepo}
}

func (f *CatalogFlowImpl) GetStore(ctx context.Context, id uint) (*dto.StoreDTO, error) {
	store, err := f.storeRepo.ByIDWithRelations(ctx, id)
	if err != nil {
		return nil, NewBusinessError("STORE_LOOKUP_FAILED", "Failed to load store", err)
	}
	if store == nil {
		return nil, NewBusinessError("STORE_NOT_FOUND", "Store not found", ErrStoreNotFound)
	}
	return ToStoreDTO(store), nil
}

func (f *CatalogFlowImpl) GetDepartment(ctx context.Context, id uint) (*dto.DepartmentDTO, error) {
	department, err := f.departmentRepo.ByIDWithRelations(ctx, id)
	if err != nil {
		return nil, NewBusinessError("DEPARTMENT_LOOKUP_FAILED", "Failed to load department", err)
	}
	if department == nil {
		return nil, NewBusinessError("DEPARTMENT_NOT_FOUND", "Department not found", ErrDepartmentNotFound)
	}
	return ToDepartmentDTO(department), nil
}

// ListDepartments returns the departments of an existing store ordered by name
func (f *CatalogFlowImpl) ListDepartments(ctx context.Context, storeID uint) ([]dto.DepartmentSummaryDTO, error) {
	exists, err := f.storeRepo.Exists(ctx, models.StoreFilter{ID: &storeID})
	if err != nil {
		return nil, NewBusinessError("STORE_LOOKUP_FAILED", "Failed to load store", err)
	}
	if !exists {
		return nil, NewBusinessError("STORE_NOT_FOUND", "Store not found", ErrStoreNotFound)
	}

	departments, err := f.departmentRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, NewBusinessError("DEPARTMENT_LOOKUP_FAILED", "Failed to load departments", err)
	}

	out := make([]dto.DepartmentSummaryDTO, 0, len(departments))
	for _, d := range departments {
		out = append(out, dto.DepartmentSummaryDTO{ID: d.ID, Name: d.Name, Manager: toEmployeeDTO(d.Manager)})
	}
	return out, nil
}

func toEmployeeDTO(e *models.Employee) *dto.EmployeeDTO {
	if e == nil {
		return nil
	}
	return &dto.EmployeeDTO{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName, FullName: e.FullName()}
}

// ToStoreDTO converts a store loaded with its relations
func ToStoreDTO(s *models.Store) *dto.StoreDTO {
	out := &dto.StoreDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Director:    toEmployeeDTO(s.Director),
		Departments: make([]dto.DepartmentSummaryDTO, 0, len(s.Departments)),
	}
	if s.StoreClass != nil {
		out.Class = &dto.StoreClassDTO{ID: s.StoreClass.ID, Name: s.StoreClass.Name, Description: s.StoreClass.Description}
	}
	for _, d := range s.Departments {
		out.Departments = append(out.Departments, dto.DepartmentSummaryDTO{
			ID:      d.ID,
			Name:    d.Name,
			Manager: toEmployeeDTO(d.Manager),
		})
	}
	return out
}

// ToDepartmentDTO converts a department loaded with its relations
func ToDepartmentDTO(d *models.Department) *dto.DepartmentDTO {
	out := &dto.DepartmentDTO{
		ID:       d.ID,
		Name:     d.Name,
		Manager:  toEmployeeDTO(d.Manager),
		Products: make([]dto.DepartmentStockDTO, 0, len(d.DepartmentProducts)),
	}
	if d.Store != nil {
		out.Store = &dto.StoreSummaryDTO{ID: d.Store.ID, Name: d.Store.Name}
	}
	for _, dp := range d.DepartmentProducts {
		line := dto.DepartmentStockDTO{Article: dp.Article, Count: dp.Count}
		if dp.Product != nil {
			line.Name = dp.Product.Name
			line.Sort = dp.Product.Sort
		}
		out.Products = append(out.Products, line)
	}
	return out
}
