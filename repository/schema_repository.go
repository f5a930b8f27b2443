package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirphl/retail-inventory/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// IndexDefinition is a secondary index that speeds up the report queries
type IndexDefinition struct {
	Name    string
	Table   string
	Columns []string
}

// ReportIndexes are created and dropped as a set
var ReportIndexes = []IndexDefinition{
	{Name: "idx_product_name_search", Table: models.TableProduct, Columns: []string{"name"}},
	{Name: "idx_department_store_id_fk", Table: models.TableDepartment, Columns: []string{"store_id"}},
	{Name: "idx_department_product_count_sort", Table: models.TableDepartmentProduct, Columns: []string{"count"}},
	{Name: "idx_warehouse_product_count_sort", Table: models.TableWarehouseProduct, Columns: []string{"count"}},
	{Name: "idx_warehouse_priority_sort", Table: models.TableWarehousePriority, Columns: []string{"priority"}},
	{Name: "idx_product_price_sort", Table: models.TableProductPrice, Columns: []string{"price"}},
	{Name: "idx_warehouse_product_price_sort", Table: models.TableWarehouseProduct, Columns: []string{"price"}},
	{Name: "idx_department_product_join", Table: models.TableDepartmentProduct, Columns: []string{"department_id", "article"}},
	{Name: "idx_warehouse_product_join", Table: models.TableWarehouseProduct, Columns: []string{"trading_base_id", "article"}},
	{Name: "idx_product_price_join", Table: models.TableProductPrice, Columns: []string{"store_class_id", "article"}},
	{Name: "idx_employee_name", Table: models.TableEmployee, Columns: []string{"last_name", "first_name"}},
	{Name: "idx_store_class", Table: models.TableStore, Columns: []string{"store_class_id"}},
}

// CreateSQL renders the idempotent CREATE INDEX statement
func (d IndexDefinition) CreateSQL() string {
	cols := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = pq.QuoteIdentifier(c)
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
		pq.QuoteIdentifier(d.Name), pq.QuoteIdentifier(d.Table), strings.Join(cols, ", "))
}

// DropSQL renders the idempotent DROP INDEX statement
func (d IndexDefinition) DropSQL() string {
	return "DROP INDEX IF EXISTS " + pq.QuoteIdentifier(d.Name)
}

// TruncateSQL empties every inventory table and resets identity sequences
func TruncateSQL() string {
	tables := models.TruncateOrder()
	quoted := make([]string, len(tables))
	for i, t := range tables {
		quoted[i] = pq.QuoteIdentifier(t)
	}
	return "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"
}

// SchemaRepositoryImpl implements SchemaRepository
type SchemaRepositoryImpl struct {
	db *gorm.DB
}

// NewSchemaRepository creates a new schema repository
func NewSchemaRepository(db *gorm.DB) SchemaRepository {
	return &SchemaRepositoryImpl{db: db}
}

func (r *SchemaRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// CreateTables creates missing tables, keys and foreign keys
func (r *SchemaRepositoryImpl) CreateTables(ctx context.Context) error {
	if err := r.getDB(ctx).AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// CreateIndexes runs every CREATE INDEX; a failure does not stop the remaining ones
func (r *SchemaRepositoryImpl) CreateIndexes(ctx context.Context) error {
	db := r.getDB(ctx)
	var errs []error
	for _, idx := range ReportIndexes {
		if err := db.Exec(idx.CreateSQL()).Error; err != nil {
			errs = append(errs, fmt.Errorf("create index %s: %w", idx.Name, err))
		}
	}
	return errors.Join(errs...)
}

// DropIndexes runs every DROP INDEX; a failure does not stop the remaining ones
func (r *SchemaRepositoryImpl) DropIndexes(ctx context.Context) error {
	db := r.getDB(ctx)
	var errs []error
	for _, idx := range ReportIndexes {
		if err := db.Exec(idx.DropSQL()).Error; err != nil {
			errs = append(errs, fmt.Errorf("drop index %s: %w", idx.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ListIndexes returns which report indexes currently exist, sorted by name
func (r *SchemaRepositoryImpl) ListIndexes(ctx context.Context) ([]string, error) {
	names := make([]string, len(ReportIndexes))
	for i, idx := range ReportIndexes {
		names[i] = idx.Name
	}

	var existing []string
	err := r.getDB(ctx).Raw(
		"SELECT indexname FROM pg_indexes WHERE schemaname = current_schema() AND indexname IN ? ORDER BY indexname",
		names,
	).Scan(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	return existing, nil
}

// TruncateAll removes all inventory rows in one statement
func (r *SchemaRepositoryImpl) TruncateAll(ctx context.Context) error {
	if err := r.getDB(ctx).Exec(TruncateSQL()).Error; err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}
