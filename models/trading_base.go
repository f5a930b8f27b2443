package models

// TradingBase is a distribution warehouse that supplies stores
// Table: trading_base
type TradingBase struct {
	ID          uint   `gorm:"column:trading_base_id;primaryKey" json:"trading_base_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	WarehouseProducts   []WarehouseProduct  `gorm:"foreignKey:TradingBaseID;references:ID" json:"warehouse_products,omitempty"`
	WarehousePriorities []WarehousePriority `gorm:"foreignKey:TradingBaseID;references:ID" json:"warehouse_priorities,omitempty"`
}

func (TradingBase) TableName() string { return TableTradingBase }

// TradingBaseFilter represents filter criteria for trading base queries
type TradingBaseFilter struct {
	ID   *uint
	Name *string
}
