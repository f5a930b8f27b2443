package models

import "github.com/shopspring/decimal"

// ProductPrice is the retail price of a product for every store of a class
// Table: product_price
type ProductPrice struct {
	StoreClassID uint            `gorm:"column:store_class_id;primaryKey;autoIncrement:false" json:"store_class_id"`
	Article      uint            `gorm:"column:article;primaryKey;autoIncrement:false" json:"article"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	StoreClass *StoreClass `gorm:"foreignKey:StoreClassID;references:ID" json:"store_class,omitempty"`
	Product    *Product    `gorm:"foreignKey:Article;references:Article" json:"product,omitempty"`
}

func (ProductPrice) TableName() string { return TableProductPrice }

// ProductPriceFilter represents filter criteria for class price queries
type ProductPriceFilter struct {
	StoreClassID *uint
	Article      *uint
}
