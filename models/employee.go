package models

// Employee is a person who can direct a store or manage a department
// Table: employee
type Employee struct {
	ID        uint   `gorm:"column:employee_id;primaryKey" json:"employee_id"`
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`

	ManagedStores      []Store      `gorm:"foreignKey:DirectorID;references:ID" json:"managed_stores,omitempty"`
	ManagedDepartments []Department `gorm:"foreignKey:ManagerID;references:ID" json:"managed_departments,omitempty"`
}

func (Employee) TableName() string { return TableEmployee }

// FullName returns "first last"
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeFilter represents filter criteria for employee queries
type EmployeeFilter struct {
	ID       *uint
	LastName *string
}
