package dto

// Default parameters used when a query string omits them
const (
	DefaultStoreID       = 1
	DefaultTradingBaseID = 2
	DefaultDepartmentID  = 1
	DefaultProductName   = "Молоко"
)

// StoreQueryRequest parameterizes the store scoped queries
type StoreQueryRequest struct {
	StoreID *int `query:"store_id" json:"store_id,omitempty" validate:"omitempty,gte=1"`
	Verbose bool `query:"verbose" json:"verbose"`
}

// StoreIDOrDefault returns the requested store or the default one
func (r StoreQueryRequest) StoreIDOrDefault() uint {
	if r.StoreID == nil {
		return DefaultStoreID
	}
	return uint(*r.StoreID)
}

// TradingBaseQueryRequest parameterizes the base products query
type TradingBaseQueryRequest struct {
	BaseID  *int `query:"base_id" json:"base_id,omitempty" validate:"omitempty,gte=1"`
	Verbose bool `query:"verbose" json:"verbose"`
}

func (r TradingBaseQueryRequest) BaseIDOrDefault() uint {
	if r.BaseID == nil {
		return DefaultTradingBaseID
	}
	return uint(*r.BaseID)
}

// DepartmentQueryRequest parameterizes the department products query
type DepartmentQueryRequest struct {
	DepartmentID *int `query:"department_id" json:"department_id,omitempty" validate:"omitempty,gte=1"`
	Verbose      bool `query:"verbose" json:"verbose"`
}

func (r DepartmentQueryRequest) DepartmentIDOrDefault() uint {
	if r.DepartmentID == nil {
		return DefaultDepartmentID
	}
	return uint(*r.DepartmentID)
}

// ProductSearchRequest parameterizes the product search; the name is matched as a substring
type ProductSearchRequest struct {
	ProductName *string `query:"product_name" json:"product_name,omitempty" validate:"omitempty,max=100"`
	Verbose     bool    `query:"verbose" json:"verbose"`
}

func (r ProductSearchRequest) ProductNameOrDefault() string {
	if r.ProductName == nil {
		return DefaultProductName
	}
	return *r.ProductName
}

// VerboseRequest is accepted by queries without parameters
type VerboseRequest struct {
	Verbose bool `query:"verbose" json:"verbose"`
}

// QueryResult carries the rows of one query and how long it took
type QueryResult[T any] struct {
	Query          string  `json:"query"`
	Rows           []T     `json:"rows"`
	RowCount       int     `json:"row_count"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// QuerySummary is one entry of the all-queries run, with the rows rendered as a string
type QuerySummary struct {
	Query          string  `json:"query"`
	Result         string  `json:"result"`
	RowCount       int     `json:"row_count"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// RunAllResponse lists every query in registration order
type RunAllResponse struct {
	Results             []QuerySummary `json:"results"`
	TotalElapsedSeconds float64        `json:"total_elapsed_seconds"`
}

// Result returns the summary of the named query
func (r *RunAllResponse) Result(query string) (QuerySummary, bool) {
	for _, s := range r.Results {
		if s.Query == query {
			return s, true
		}
	}
	return QuerySummary{}, false
}
