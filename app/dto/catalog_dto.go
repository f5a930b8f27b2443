package dto

// EmployeeDTO is a person acting as director or manager
type EmployeeDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type StoreClassDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DepartmentSummaryDTO is a department listed under its store
type DepartmentSummaryDTO struct {
	ID      uint         `json:"id"`
	Name    string       `json:"name"`
	Manager *EmployeeDTO `json:"manager,omitempty"`
}

// StoreDTO is a store with its class, director and departments
type StoreDTO struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Class       *StoreClassDTO         `json:"class,omitempty"`
	Director    *EmployeeDTO           `json:"director,omitempty"`
	Departments []DepartmentSummaryDTO `json:"departments"`
}

type StoreSummaryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// DepartmentStockDTO is one product line of a department
type DepartmentStockDTO struct {
	Article uint   `json:"article"`
	Name    string `json:"name"`
	Sort    string `json:"sort,omitempty"`
	Count   int    `json:"count"`
}

// DepartmentDTO is a department with its store, manager and stock
type DepartmentDTO struct {
	ID       uint                 `json:"id"`
	Name     string               `json:"name"`
	Store    *StoreSummaryDTO     `json:"store,omitempty"`
	Manager  *EmployeeDTO         `json:"manager,omitempty"`
	Products []DepartmentStockDTO `json:"products"`
}

// EntityIDRequest is the :id path parameter of the navigation routes
type EntityIDRequest struct {
	ID int `uri:"id" validate:"gte=1"`
}
