// Package models contains the inventory domain entities and their table mappings
package models

// StoreClass groups stores into a pricing tier (premium, standard, budget, ...)
// Table: store_class
// Retail price of a product is resolved through the class of the store, never per store
type StoreClass struct {
	ID          uint   `gorm:"column:store_class_id;primaryKey" json:"store_class_id"`
	Name        string `gorm:"size:50;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Stores        []Store        `gorm:"foreignKey:StoreClassID;references:ID" json:"stores,omitempty"`
	ProductPrices []ProductPrice `gorm:"foreignKey:StoreClassID;references:ID" json:"product_prices,omitempty"`
}

func (StoreClass) TableName() string { return TableStoreClass }

// StoreClassFilter represents filter criteria for store class queries
type StoreClassFilter struct {
	ID   *uint
	Name *string
}
