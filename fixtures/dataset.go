// Package fixtures builds the datasets loaded into the inventory schema.
//
// A Dataset is pure data: rows that reference a parent do so by the parent's
// 1-based position in the corresponding slice, so the same dataset can be
// loaded into a freshly truncated schema and resolved to generated keys there.
package fixtures

import (
	"errors"
	"fmt"

	"github.com/amirphl/retail-inventory/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidDataset = errors.New("invalid dataset")

// StoreRow references its class and director by position
type StoreRow struct {
	Name        string
	Description string
	ClassRef    int
	DirectorRef int
}

// DepartmentRow references its store and manager by position
type DepartmentRow struct {
	Name       string
	StoreRef   int
	ManagerRef int
}

type StockRow struct {
	DepartmentRef int
	ProductRef    int
	Count         int
}

type WarehouseRow struct {
	BaseRef    int
	ProductRef int
	Count      int
	Price      decimal.Decimal
}

type PriceRow struct {
	ClassRef   int
	ProductRef int
	Price      decimal.Decimal
}

// PriorityRow ranks a base for a (product, store) pair; a zero Priority stores models.DefaultPriority
type PriorityRow struct {
	ProductRef int
	StoreRef   int
	BaseRef    int
	Priority   int
}

// Dataset holds one full population of the schema
type Dataset struct {
	StoreClasses        []models.StoreClass
	TradingBases        []models.TradingBase
	Employees           []models.Employee
	Stores              []StoreRow
	Departments         []DepartmentRow
	Products            []models.Product
	DepartmentProducts  []StockRow
	WarehouseProducts   []WarehouseRow
	ProductPrices       []PriceRow
	WarehousePriorities []PriorityRow
}

// Counts returns the number of rows per table
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		models.TableStoreClass:        len(d.StoreClasses),
		models.TableTradingBase:       len(d.TradingBases),
		models.TableEmployee:          len(d.Employees),
		models.TableStore:             len(d.Stores),
		models.TableDepartment:        len(d.Departments),
		models.TableProduct:           len(d.Products),
		models.TableDepartmentProduct: len(d.DepartmentProducts),
		models.TableWarehouseProduct:  len(d.WarehouseProducts),
		models.TableProductPrice:      len(d.ProductPrices),
		models.TableWarehousePriority: len(d.WarehousePriorities),
	}
}

// Total returns the number of rows across all tables
func (d *Dataset) Total() int {
	total := 0
	for _, n := range d.Counts() {
		total += n
	}
	return total
}

// Validate checks that every positional reference points at an existing parent,
// that composite keys are unique and that counts and priorities are in range.
func (d *Dataset) Validate() error {
	var errs []error
	ref := func(kind string, row, ref, size int) {
		if ref < 1 || ref > size {
			errs = append(errs, fmt.Errorf("%s row %d: reference %d out of range 1..%d", kind, row+1, ref, size))
		}
	}

	for i, s := range d.Stores {
		ref("store.class", i, s.ClassRef, len(d.StoreClasses))
		ref("store.director", i, s.DirectorRef, len(d.Employees))
	}
	for i, dep := range d.Departments {
		ref("department.store", i, dep.StoreRef, len(d.Stores))
		ref("department.manager", i, dep.ManagerRef, len(d.Employees))
	}

	seen2 := map[string]map[[2]int]bool{
		models.TableDepartmentProduct: {},
		models.TableWarehouseProduct:  {},
		models.TableProductPrice:      {},
	}
	dup2 := func(table string, row int, key [2]int) {
		if seen2[table][key] {
			errs = append(errs, fmt.Errorf("%s row %d: duplicate key %v", table, row+1, key))
		}
		seen2[table][key] = true
	}

	for i, r := range d.DepartmentProducts {
		ref("department_product.department", i, r.DepartmentRef, len(d.Departments))
		ref("department_product.product", i, r.ProductRef, len(d.Products))
		if r.Count < 0 {
			errs = append(errs, fmt.Errorf("department_product row %d: negative count %d", i+1, r.Count))
		}
		dup2(models.TableDepartmentProduct, i, [2]int{r.DepartmentRef, r.ProductRef})
	}
	for i, r := range d.WarehouseProducts {
		ref("warehouse_product.base", i, r.BaseRef, len(d.TradingBases))
		ref("warehouse_product.product", i, r.ProductRef, len(d.Products))
		if r.Count < 0 {
			errs = append(errs, fmt.Errorf("warehouse_product row %d: negative count %d", i+1, r.Count))
		}
		dup2(models.TableWarehouseProduct, i, [2]int{r.BaseRef, r.ProductRef})
	}
	for i, r := range d.ProductPrices {
		ref("product_price.class", i, r.ClassRef, len(d.StoreClasses))
		ref("product_price.product", i, r.ProductRef, len(d.Products))
		dup2(models.TableProductPrice, i, [2]int{r.ClassRef, r.ProductRef})
	}

	seen3 := map[[3]int]bool{}
	for i, r := range d.WarehousePriorities {
		ref("warehouse_priority.product", i, r.ProductRef, len(d.Products))
		ref("warehouse_priority.store", i, r.StoreRef, len(d.Stores))
		ref("warehouse_priority.base", i, r.BaseRef, len(d.TradingBases))
		if r.Priority < 0 {
			errs = append(errs, fmt.Errorf("warehouse_priority row %d: priority must not be negative", i+1))
		}
		key := [3]int{r.ProductRef, r.StoreRef, r.BaseRef}
		if seen3[key] {
			errs = append(errs, fmt.Errorf("warehouse_priority row %d: duplicate key %v", i+1, key))
		}
		seen3[key] = true
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
}
