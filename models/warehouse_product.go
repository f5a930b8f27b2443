package models

import "github.com/shopspring/decimal"

// WarehouseProduct is the stock and wholesale price of a product at a trading base
// Table: warehouse_product
type WarehouseProduct struct {
	TradingBaseID uint            `gorm:"column:trading_base_id;primaryKey;autoIncrement:false" json:"trading_base_id"`
	Article       uint            `gorm:"column:article;primaryKey;autoIncrement:false" json:"article"`
	Count         int             `gorm:"not null;default:0;check:chk_warehouse_product_count,count >= 0" json:"count"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	TradingBase *TradingBase `gorm:"foreignKey:TradingBaseID;references:ID" json:"trading_base,omitempty"`
	Product     *Product     `gorm:"foreignKey:Article;references:Article" json:"product,omitempty"`
}

func (WarehouseProduct) TableName() string { return TableWarehouseProduct }

// WarehouseProductFilter represents filter criteria for warehouse stock queries
type WarehouseProductFilter struct {
	TradingBaseID *uint
	Article       *uint
}
