package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/retail-inventory/models"
	"gorm.io/gorm"
)

// ReportRepositoryImpl implements ReportRepository with the gorm query builder.
// Caller values only ever reach the database as bound parameters.
type ReportRepositoryImpl struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

func (r *ReportRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// zeroCountArticles selects articles listed with count 0 in any department of the store
func zeroCountArticles(db *gorm.DB, storeID uint) *gorm.DB {
	return db.Table("department_product AS zdp").
		Select("zdp.article").
		Joins("JOIN department AS zd ON zd.department_id = zdp.department_id").
		Where("zd.store_id = ? AND zdp.count = 0", storeID)
}

// storeArticles selects articles listed in any department of the store, whatever the count
func storeArticles(db *gorm.DB, storeID uint) *gorm.DB {
	return db.Table("department_product AS sdp").
		Select("sdp.article").
		Joins("JOIN department AS sd ON sd.department_id = sdp.department_id").
		Where("sd.store_id = ?", storeID)
}

// reorderCandidates joins product, warehouse stock, base, the fixed store and its priorities
func reorderCandidates(db *gorm.DB, storeID uint) *gorm.DB {
	return db.Table("product AS p").
		Joins("JOIN warehouse_product AS wp ON wp.article = p.article").
		Joins("JOIN trading_base AS tb ON tb.trading_base_id = wp.trading_base_id").
		Joins("JOIN store AS s ON s.store_id = ?", storeID).
		Joins("JOIN warehouse_priority AS wpr ON wpr.store_id = s.store_id AND wpr.article = p.article AND wpr.trading_base_id = tb.trading_base_id")
}

const reorderColumns = "s.name AS store_name, p.name AS product_name, tb.name AS trading_base, " +
	"wp.count AS available_quantity, wp.price AS base_price, wpr.priority AS priority"

// StoreProducts lists a store's stock, priced through the store's class
func (r *ReportRepositoryImpl) StoreProducts(ctx context.Context, storeID uint) ([]StoreProductRow, error) {
	var rows []StoreProductRow
	err := r.getDB(ctx).Table("store AS s").
		Select("s.name AS store_name, d.name AS department_name, p.article, p.name AS product_name, "+
			"COALESCE(p.sort, '') AS product_sort, dp.count AS quantity, pp.price AS current_price, "+
			"dp.count * pp.price AS total_value").
		Joins("JOIN department AS d ON d.store_id = s.store_id").
		Joins("JOIN department_product AS dp ON dp.department_id = d.department_id").
		Joins("JOIN product AS p ON p.article = dp.article").
		Joins("JOIN product_price AS pp ON pp.article = p.article AND pp.store_class_id = s.store_class_id").
		Where("s.store_id = ?", storeID).
		Order("d.name, p.name, p.article").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store products query failed: %w", err)
	}
	return rows, nil
}

// BaseProducts lists the in-stock products of a trading base
func (r *ReportRepositoryImpl) BaseProducts(ctx context.Context, tradingBaseID uint) ([]BaseProductRow, error) {
	var rows []BaseProductRow
	err := r.getDB(ctx).Table("trading_base AS tb").
		Select("tb.name AS trading_base_name, p.article, p.name AS product_name, "+
			"COALESCE(p.sort, '') AS product_sort, wp.count AS available_quantity, wp.price AS base_price, "+
			"wp.count * wp.price AS total_value").
		Joins("JOIN warehouse_product AS wp ON wp.trading_base_id = tb.trading_base_id").
		Joins("JOIN product AS p ON p.article = wp.article").
		Where("tb.trading_base_id = ?", tradingBaseID).
		Where("wp.count > 0").
		Order("p.name, p.article").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("base products query failed: %w", err)
	}
	return rows, nil
}

// OrderableProducts lists bases that can resupply products the store has run out of
func (r *ReportRepositoryImpl) OrderableProducts(ctx context.Context, storeID uint) ([]OrderableProductRow, error) {
	db := r.getDB(ctx)

	var rows []OrderableProductRow
	err := reorderCandidates(db, storeID).
		Select(reorderColumns).
		Where("p.article IN (?)", zeroCountArticles(db, storeID)).
		Where("wp.count >= 1").
		Order("p.name, wpr.priority, tb.name").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("orderable products query failed: %w", err)
	}
	return rows, nil
}

// ExtendedOrderableProducts also includes products the store never listed and
// labels every row; the zero-count check wins over the absence check.
func (r *ReportRepositoryImpl) ExtendedOrderableProducts(ctx context.Context, storeID uint) ([]ExtendedOrderableProductRow, error) {
	db := r.getDB(ctx)

	var rows []ExtendedOrderableProductRow
	err := reorderCandidates(db, storeID).
		Select(reorderColumns+", CASE WHEN p.article IN (?) THEN ? WHEN p.article NOT IN (?) THEN ? ELSE ? END AS status",
			zeroCountArticles(db, storeID), models.StatusOutOfStock,
			storeArticles(db, storeID), models.StatusNewItem,
			models.StatusOther).
		Where("(p.article IN (?) OR p.article NOT IN (?))", zeroCountArticles(db, storeID), storeArticles(db, storeID)).
		Where("wp.count >= 0").
		Order("p.name, wpr.priority, tb.name").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("extended orderable products query failed: %w", err)
	}
	return rows, nil
}

// DepartmentProducts lists the stock of one department
func (r *ReportRepositoryImpl) DepartmentProducts(ctx context.Context, departmentID uint) ([]DepartmentProductRow, error) {
	var rows []DepartmentProductRow
	err := r.getDB(ctx).Table("store AS s").
		Select("s.name AS store_name, d.name AS department_name, p.name AS product_name, dp.count AS quantity").
		Joins("JOIN department AS d ON d.store_id = s.store_id").
		Joins("JOIN department_product AS dp ON dp.department_id = d.department_id").
		Joins("JOIN product AS p ON p.article = dp.article").
		Where("d.department_id = ?", departmentID).
		Order("p.name, p.article").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("department products query failed: %w", err)
	}
	return rows, nil
}

// DepartmentManagers lists who manages each department of a store
func (r *ReportRepositoryImpl) DepartmentManagers(ctx context.Context, storeID uint) ([]DepartmentManagerRow, error) {
	var rows []DepartmentManagerRow
	err := r.getDB(ctx).Table("store AS s").
		Select("s.name AS store_name, d.name AS department_name, CONCAT(e.first_name, ' ', e.last_name) AS manager_name").
		Joins("JOIN department AS d ON d.store_id = s.store_id").
		Joins("JOIN employee AS e ON e.employee_id = d.manager_id").
		Where("s.store_id = ?", storeID).
		Order("d.name, d.department_id").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("department managers query failed: %w", err)
	}
	return rows, nil
}

// DepartmentValues sums stock value per (store name, department name), highest first
func (r *ReportRepositoryImpl) DepartmentValues(ctx context.Context) ([]DepartmentValueRow, error) {
	var rows []DepartmentValueRow
	err := r.getDB(ctx).Table("store AS s").
		Select("s.name AS store_name, d.name AS department_name, SUM(dp.count * pp.price) AS total_value").
		Joins("JOIN department AS d ON d.store_id = s.store_id").
		Joins("JOIN department_product AS dp ON dp.department_id = d.department_id").
		Joins("JOIN product_price AS pp ON pp.article = dp.article AND pp.store_class_id = s.store_class_id").
		Group("s.name, d.name").
		Order("total_value DESC, s.name, d.name").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("department values query failed: %w", err)
	}
	return rows, nil
}

// ProductSearch finds bases holding products whose name contains the given text, case-insensitively
func (r *ReportRepositoryImpl) ProductSearch(ctx context.Context, name string) ([]ProductSearchRow, error) {
	var rows []ProductSearchRow
	err := r.getDB(ctx).Table("product AS p").
		Select("p.name AS product_name, tb.name AS trading_base, COALESCE(tb.description, '') AS base_description, "+
			"wp.count AS available_quantity, wp.price AS price_per_unit").
		Joins("JOIN warehouse_product AS wp ON wp.article = p.article").
		Joins("JOIN trading_base AS tb ON tb.trading_base_id = wp.trading_base_id").
		Where("p.name ILIKE '%' || ? || '%'", name).
		Order("wp.count DESC, p.name, tb.name").
		Limit(ReportRowLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("product search query failed: %w", err)
	}
	return rows, nil
}
