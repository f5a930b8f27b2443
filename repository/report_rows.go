package repository

import "github.com/shopspring/decimal"

// ReportRowLimit caps every analytical query
const ReportRowLimit = 100

// StoreProductRow is one line of a store's stock valued at its class price
type StoreProductRow struct {
	StoreName      string          `gorm:"column:store_name" json:"store_name"`
	DepartmentName string          `gorm:"column:department_name" json:"department_name"`
	Article        uint            `gorm:"column:article" json:"article"`
	ProductName    string          `gorm:"column:product_name" json:"product_name"`
	ProductSort    string          `gorm:"column:product_sort" json:"product_sort"`
	Quantity       int             `gorm:"column:quantity" json:"quantity"`
	CurrentPrice   decimal.Decimal `gorm:"column:current_price" json:"current_price"`
	TotalValue     decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

// BaseProductRow is one in-stock line of a trading base
type BaseProductRow struct {
	TradingBaseName   string          `gorm:"column:trading_base_name" json:"trading_base_name"`
	Article           uint            `gorm:"column:article" json:"article"`
	ProductName       string          `gorm:"column:product_name" json:"product_name"`
	ProductSort       string          `gorm:"column:product_sort" json:"product_sort"`
	AvailableQuantity int             `gorm:"column:available_quantity" json:"available_quantity"`
	BasePrice         decimal.Decimal `gorm:"column:base_price" json:"base_price"`
	TotalValue        decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

// OrderableProductRow is a (product, base) pair a store may reorder from
type OrderableProductRow struct {
	StoreName         string          `gorm:"column:store_name" json:"store_name"`
	ProductName       string          `gorm:"column:product_name" json:"product_name"`
	TradingBase       string          `gorm:"column:trading_base" json:"trading_base"`
	AvailableQuantity int             `gorm:"column:available_quantity" json:"available_quantity"`
	BasePrice         decimal.Decimal `gorm:"column:base_price" json:"base_price"`
	Priority          int             `gorm:"column:priority" json:"priority"`
}

// ExtendedOrderableProductRow adds the reorder status label
type ExtendedOrderableProductRow struct {
	OrderableProductRow
	Status string `gorm:"column:status" json:"status"`
}

type DepartmentProductRow struct {
	StoreName      string `gorm:"column:store_name" json:"store_name"`
	DepartmentName string `gorm:"column:department_name" json:"department_name"`
	ProductName    string `gorm:"column:product_name" json:"product_name"`
	Quantity       int    `gorm:"column:quantity" json:"quantity"`
}

type DepartmentManagerRow struct {
	StoreName      string `gorm:"column:store_name" json:"store_name"`
	DepartmentName string `gorm:"column:department_name" json:"department_name"`
	ManagerName    string `gorm:"column:manager_name" json:"manager_name"`
}

type DepartmentValueRow struct {
	StoreName      string          `gorm:"column:store_name" json:"store_name"`
	DepartmentName string          `gorm:"column:department_name" json:"department_name"`
	TotalValue     decimal.Decimal `gorm:"column:total_value" json:"total_value"`
}

type ProductSearchRow struct {
	ProductName       string          `gorm:"column:product_name" json:"product_name"`
	TradingBase       string          `gorm:"column:trading_base" json:"trading_base"`
	BaseDescription   string          `gorm:"column:base_description" json:"base_description"`
	AvailableQuantity int             `gorm:"column:available_quantity" json:"available_quantity"`
	PricePerUnit      decimal.Decimal `gorm:"column:price_per_unit" json:"price_per_unit"`
}
