package dto

// IndexStatusResponse lists the report indexes present after an index operation
type IndexStatusResponse struct {
	Operation string   `json:"operation"`
	Indexes   []string `json:"indexes"`
	Expected  int      `json:"expected"`
}

// MigrateResponse lists the tables that now exist
type MigrateResponse struct {
	Tables []string `json:"tables"`
}
