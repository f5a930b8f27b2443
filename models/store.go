package models

// Store is a retail outlet belonging to exactly one class and directed by one employee
// Table: store
type Store struct {
	ID           uint   `gorm:"column:store_id;primaryKey" json:"store_id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	StoreClassID uint   `gorm:"column:store_class_id;not null" json:"store_class_id"`
	DirectorID   uint   `gorm:"column:director_id;not null" json:"director_id"`

	StoreClass          *StoreClass         `gorm:"foreignKey:StoreClassID;references:ID" json:"store_class,omitempty"`
	Director            *Employee           `gorm:"foreignKey:DirectorID;references:ID" json:"director,omitempty"`
	Departments         []Department        `gorm:"foreignKey:StoreID;references:ID" json:"departments,omitempty"`
	WarehousePriorities []WarehousePriority `gorm:"foreignKey:StoreID;references:ID" json:"warehouse_priorities,omitempty"`
}

func (Store) TableName() string { return TableStore }

// StoreFilter represents filter criteria for store queries
type StoreFilter struct {
	ID           *uint
	StoreClassID *uint
	DirectorID   *uint
	Name         *string
}
