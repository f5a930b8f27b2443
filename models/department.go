package models

// Department is a section of a store with a single manager
// Table: department
type Department struct {
	ID        uint   `gorm:"column:department_id;primaryKey" json:"department_id"`
	StoreID   uint   `gorm:"column:store_id;not null" json:"store_id"`
	ManagerID uint   `gorm:"column:manager_id;not null" json:"manager_id"`
	Name      string `gorm:"size:100;not null" json:"name"`

	Store              *Store              `gorm:"foreignKey:StoreID;references:ID" json:"store,omitempty"`
	Manager            *Employee           `gorm:"foreignKey:ManagerID;references:ID" json:"manager,omitempty"`
	DepartmentProducts []DepartmentProduct `gorm:"foreignKey:DepartmentID;references:ID" json:"department_products,omitempty"`
}

func (Department) TableName() string { return TableDepartment }

// DepartmentFilter represents filter criteria for department queries
type DepartmentFilter struct {
	ID        *uint
	StoreID   *uint
	ManagerID *uint
	Name      *string
}
