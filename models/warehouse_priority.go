package models

// DefaultPriority is applied when a warehouse priority row is stored without one
const DefaultPriority = 5

// WarehousePriority ranks which trading base a store should reorder a product from
// Table: warehouse_priority
// Lower value means preferred
type WarehousePriority struct {
	Article       uint `gorm:"column:article;primaryKey;autoIncrement:false" json:"article"`
	StoreID       uint `gorm:"column:store_id;primaryKey;autoIncrement:false" json:"store_id"`
	TradingBaseID uint `gorm:"column:trading_base_id;primaryKey;autoIncrement:false" json:"trading_base_id"`
	Priority      int  `gorm:"not null;default:5" json:"priority"`

	Product     *Product     `gorm:"foreignKey:Article;references:Article" json:"product,omitempty"`
	Store       *Store       `gorm:"foreignKey:StoreID;references:ID" json:"store,omitempty"`
	TradingBase *TradingBase `gorm:"foreignKey:TradingBaseID;references:ID" json:"trading_base,omitempty"`
}

func (WarehousePriority) TableName() string { return TableWarehousePriority }

// WarehousePriorityFilter represents filter criteria for reorder priority queries
type WarehousePriorityFilter struct {
	Article       *uint
	StoreID       *uint
	TradingBaseID *uint
}
