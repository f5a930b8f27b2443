package models

const (
	TableStoreClass        = "store_class"
	TableTradingBase       = "trading_base"
	TableEmployee          = "employee"
	TableStore             = "store"
	TableDepartment        = "department"
	TableProduct           = "product"
	TableDepartmentProduct = "department_product"
	TableWarehouseProduct  = "warehouse_product"
	TableProductPrice      = "product_price"
	TableWarehousePriority = "warehouse_priority"
)

// Reorder statuses reported by the extended orderable products query
const (
	StatusOutOfStock = "OUT_OF_STOCK"
	StatusNewItem    = "NEW_ITEM"
	StatusOther      = "OTHER"
)

// AllModels returns every entity in dependency order, parents first
func AllModels() []any {
	return []any{
		&StoreClass{},
		&TradingBase{},
		&Employee{},
		&Store{},
		&Department{},
		&Product{},
		&DepartmentProduct{},
		&WarehouseProduct{},
		&ProductPrice{},
		&WarehousePriority{},
	}
}

// TruncateOrder returns the table names children first, the reverse of AllModels
func TruncateOrder() []string {
	return []string{
		TableWarehousePriority,
		TableProductPrice,
		TableWarehouseProduct,
		TableDepartmentProduct,
		TableProduct,
		TableDepartment,
		TableStore,
		TableEmployee,
		TableTradingBase,
		TableStoreClass,
	}
}
