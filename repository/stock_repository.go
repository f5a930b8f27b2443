package repository

import (
	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// Repositories for the four associative entities. They only need batch writes
// and filtered reads, both of which BaseRepository provides.

type DepartmentProductRepositoryImpl struct {
	*BaseRepository[models.DepartmentProduct, models.DepartmentProductFilter]
}

func NewDepartmentProductRepository(db *gorm.DB) DepartmentProductRepository {
	return &DepartmentProductRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DepartmentProduct](db, func(q *gorm.DB, f models.DepartmentProductFilter) *gorm.DB {
			if f.DepartmentID != nil {
				q = q.Where("department_id = ?", *f.DepartmentID)
			}
			if f.Article != nil {
				q = q.Where("article = ?", *f.Article)
			}
			if f.Count != nil {
				q = q.Where("count = ?", *f.Count)
			}
			return q
		}, "department_id ASC, article ASC"),
	}
}

type WarehouseProductRepositoryImpl struct {
	*BaseRepository[models.WarehouseProduct, models.WarehouseProductFilter]
}

func NewWarehouseProductRepository(db *gorm.DB) WarehouseProductRepository {
	return &WarehouseProductRepositoryImpl{
		BaseRepository: NewBaseRepository[models.WarehouseProduct](db, func(q *gorm.DB, f models.WarehouseProductFilter) *gorm.DB {
			if f.TradingBaseID != nil {
				q = q.Where("trading_base_id = ?", *f.TradingBaseID)
			}
			if f.Article != nil {
				q = q.Where("article = ?", *f.Article)
			}
			return q
		}, "trading_base_id ASC, article ASC"),
	}
}

type ProductPriceRepositoryImpl struct {
	*BaseRepository[models.ProductPrice, models.ProductPriceFilter]
}

func NewProductPriceRepository(db *gorm.DB) ProductPriceRepository {
	return &ProductPriceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ProductPrice](db, func(q *gorm.DB, f models.ProductPriceFilter) *gorm.DB {
			if f.StoreClassID != nil {
				q = q.Where("store_class_id = ?", *f.StoreClassID)
			}
			if f.Article != nil {
				q = q.Where("article = ?", *f.Article)
			}
			return q
		}, "store_class_id ASC, article ASC"),
	}
}

type WarehousePriorityRepositoryImpl struct {
	*BaseRepository[models.WarehousePriority, models.WarehousePriorityFilter]
}

func NewWarehousePriorityRepository(db *gorm.DB) WarehousePriorityRepository {
	return &WarehousePriorityRepositoryImpl{
		BaseRepository: NewBaseRepository[models.WarehousePriority](db, func(q *gorm.DB, f models.WarehousePriorityFilter) *gorm.DB {
			if f.Article != nil {
				q = q.Where("article = ?", *f.Article)
			}
			if f.StoreID != nil {
				q = q.Where("store_id = ?", *f.StoreID)
			}
			if f.TradingBaseID != nil {
				q = q.Where("trading_base_id = ?", *f.TradingBaseID)
			}
			return q
		}, "article ASC, store_id ASC, trading_base_id ASC"),
	}
}
