// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/retail-inventory/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

// BatchSize is the number of rows per INSERT statement for batch writes
const BatchSize = 100

// AssociationRepository covers entities keyed by a composite primary key
type AssociationRepository[T any, F any] interface {
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

type Repository[T any, F any] interface {
	AssociationRepository[T, F]
	ByID(ctx context.Context, id uint) (*T, error)
}

type StoreClassRepository interface {
	Repository[models.StoreClass, models.StoreClassFilter]
}

type TradingBaseRepository interface {
	Repository[models.TradingBase, models.TradingBaseFilter]
}

type EmployeeRepository interface {
	Repository[models.Employee, models.EmployeeFilter]
}

// StoreRepository defines operations for stores
type StoreRepository interface {
	Repository[models.Store, models.StoreFilter]
	ByIDWithRelations(ctx context.Context, id uint) (*models.Store, error)
}

// DepartmentRepository defines operations for departments
type DepartmentRepository interface {
	Repository[models.Department, models.DepartmentFilter]
	ByIDWithRelations(ctx context.Context, id uint) (*models.Department, error)
	ListByStore(ctx context.Context, storeID uint) ([]*models.Department, error)
}

type ProductRepository interface {
	Repository[models.Product, models.ProductFilter]
}

type DepartmentProductRepository interface {
	AssociationRepository[models.DepartmentProduct, models.DepartmentProductFilter]
}

type WarehouseProductRepository interface {
	AssociationRepository[models.WarehouseProduct, models.WarehouseProductFilter]
}

type ProductPriceRepository interface {
	AssociationRepository[models.ProductPrice, models.ProductPriceFilter]
}

type WarehousePriorityRepository interface {
	AssociationRepository[models.WarehousePriority, models.WarehousePriorityFilter]
}

// ReportRepository runs the fixed analytical queries. Every query is read only,
// binds caller values as parameters and returns at most ReportRowLimit rows.
type ReportRepository interface {
	StoreProducts(ctx context.Context, storeID uint) ([]StoreProductRow, error)
	BaseProducts(ctx context.Context, tradingBaseID uint) ([]BaseProductRow, error)
	OrderableProducts(ctx context.Context, storeID uint) ([]OrderableProductRow, error)
	ExtendedOrderableProducts(ctx context.Context, storeID uint) ([]ExtendedOrderableProductRow, error)
	DepartmentProducts(ctx context.Context, departmentID uint) ([]DepartmentProductRow, error)
	DepartmentManagers(ctx context.Context, storeID uint) ([]DepartmentManagerRow, error)
	DepartmentValues(ctx context.Context) ([]DepartmentValueRow, error)
	ProductSearch(ctx context.Context, name string) ([]ProductSearchRow, error)
}

// SchemaRepository manages tables and secondary indexes
type SchemaRepository interface {
	CreateTables(ctx context.Context) error
	CreateIndexes(ctx context.Context) error
	DropIndexes(ctx context.Context) error
	ListIndexes(ctx context.Context) ([]string, error)
	TruncateAll(ctx context.Context) error
}
