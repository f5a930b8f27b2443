package models

// DepartmentProduct is the stock of one product in one department
// Table: department_product
// A row with Count 0 means "listed but out of stock"; a missing row means "never listed"
type DepartmentProduct struct {
	DepartmentID uint `gorm:"column:department_id;primaryKey;autoIncrement:false" json:"department_id"`
	Article      uint `gorm:"column:article;primaryKey;autoIncrement:false" json:"article"`
	Count        int  `gorm:"not null;default:0;check:chk_department_product_count,count >= 0" json:"count"`

	Department *Department `gorm:"foreignKey:DepartmentID;references:ID" json:"department,omitempty"`
	Product    *Product    `gorm:"foreignKey:Article;references:Article" json:"product,omitempty"`
}

func (DepartmentProduct) TableName() string { return TableDepartmentProduct }

// DepartmentProductFilter represents filter criteria for department stock queries
type DepartmentProductFilter struct {
	DepartmentID *uint
	Article      *uint
	Count        *int
}
