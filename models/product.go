package models

// Product is a catalogue item identified by its article number
// Table: product
// Sort is a grade label such as "Высший сорт"
type Product struct {
	Article uint   `gorm:"column:article;primaryKey" json:"article"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Sort    string `gorm:"size:50" json:"sort,omitempty"`

	DepartmentProducts  []DepartmentProduct `gorm:"foreignKey:Article;references:Article" json:"department_products,omitempty"`
	WarehouseProducts   []WarehouseProduct  `gorm:"foreignKey:Article;references:Article" json:"warehouse_products,omitempty"`
	ProductPrices       []ProductPrice      `gorm:"foreignKey:Article;references:Article" json:"product_prices,omitempty"`
	WarehousePriorities []WarehousePriority `gorm:"foreignKey:Article;references:Article" json:"warehouse_priorities,omitempty"`
}

func (Product) TableName() string { return TableProduct }

// ProductFilter represents filter criteria for product queries
type ProductFilter struct {
	Article *uint
	Name    *string
	Sort    *string
}
