package handlers

import (
	"context"
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandlerInterface defines the analytical query endpoints
type ReportHandlerInterface interface {
	StoreProducts(c fiber.Ctx) error
	BaseProducts(c fiber.Ctx) error
	OrderableProducts(c fiber.Ctx) error
	ExtendedOrderableProducts(c fiber.Ctx) error
	DepartmentProducts(c fiber.Ctx) error
	DepartmentManagers(c fiber.Ctx) error
	DepartmentValues(c fiber.Ctx) error
	ProductSearch(c fiber.Ctx) error
	RunAll(c fiber.Ctx) error
	ExportXLSX(c fiber.Ctx) error
	Routes() []Route
}

// ReportHandler serves the report queries
type ReportHandler struct {
	baseHandler
	flow businessflow.ReportFlow
}

func NewReportHandler(flow businessflow.ReportFlow, logger *zap.Logger, timeout time.Duration) ReportHandlerInterface {
	return &ReportHandler{
		baseHandler: newBaseHandler(logger, timeout),
		flow:        flow,
	}
}

// Routes lists every report endpoint; each query is reachable at /queries/<name>
func (h *ReportHandler) Routes() []Route {
	queries := []struct {
		name    string
		handler fiber.Handler
	}{
		{businessflow.QueryStoreProducts, h.StoreProducts},
		{businessflow.QueryBaseProducts, h.BaseProducts},
		{businessflow.QueryOrderableProducts, h.OrderableProducts},
		{businessflow.QueryExtendedOrderableProducts, h.ExtendedOrderableProducts},
		{businessflow.QueryDepartmentProducts, h.DepartmentProducts},
		{businessflow.QueryDepartmentManagers, h.DepartmentManagers},
		{businessflow.QueryDepartmentValues, h.DepartmentValues},
		{businessflow.QueryProductSearch, h.ProductSearch},
	}

	routes := make([]Route, 0, len(queries)+2)
	for _, q := range queries {
		routes = append(routes, Route{Method: fiber.MethodGet, Path: "/queries/" + q.name, Name: q.name, Handler: q.handler})
	}
	return append(routes,
		Route{Method: fiber.MethodGet, Path: "/request", Name: "run_all", Handler: h.RunAll},
		Route{Method: fiber.MethodGet, Path: "/report.xlsx", Name: "report_xlsx", Handler: h.ExportXLSX},
	)
}

// serveQuery binds the query string into the flow's parameter type, validates it and runs the query
func serveQuery[Req any, Row any](h *ReportHandler, c fiber.Ctx, name string, run func(context.Context, Req) (*dto.QueryResult[Row], error)) error {
	var req Req
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/queries/"+name)
	defer cancel()

	res, err := run(ctx, req)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Query executed successfully", res)
}

// StoreProducts lists the stock of a store valued at its class price
// @Summary Store Products
// @Tags Queries
// @Produce json
// @Param store_id query int false "Store ID" default(1)
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.StoreProductRow]}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/store_products [get]
func (h *ReportHandler) StoreProducts(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryStoreProducts, h.flow.StoreProducts)
}

// BaseProducts lists the in-stock products of a trading base
// @Summary Trading Base Products
// @Tags Queries
// @Produce json
// @Param base_id query int false "Trading base ID" default(2)
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.BaseProductRow]}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/base_products [get]
func (h *ReportHandler) BaseProducts(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryBaseProducts, h.flow.BaseProducts)
}

// OrderableProducts lists the products a store may reorder and where from
// @Summary Orderable Products
// @Tags Queries
// @Produce json
// @Param store_id query int false "Store ID" default(1)
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.OrderableProductRow]}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/orderable_products [get]
func (h *ReportHandler) OrderableProducts(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryOrderableProducts, h.flow.OrderableProducts)
}

// ExtendedOrderableProducts is OrderableProducts with a stock status label
// @Summary Extended Orderable Products
// @Tags Queries
// @Produce json
// @Param store_id query int false "Store ID" default(1)
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.ExtendedOrderableProductRow]}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/extended_orderable_products [get]
func (h *ReportHandler) ExtendedOrderableProducts(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryExtendedOrderableProducts, h.flow.ExtendedOrderableProducts)
}

// @Summary Department Products
// @Tags Queries
// @Produce json
// @Param department_id query int false "Department ID" default(1)
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.DepartmentProductRow]}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/department_products [get]
func (h *ReportHandler) DepartmentProducts(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryDepartmentProducts, h.flow.DepartmentProducts)
}

// @Summary Department Managers
// @Tags Queries
// @Produce json
// @Param store_id query int false "Store ID" default(1)
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.DepartmentManagerRow]}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/department_managers [get]
func (h *ReportHandler) DepartmentManagers(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryDepartmentManagers, h.flow.DepartmentManagers)
}

// @Summary Department Values
// @Tags Queries
// @Produce json
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.DepartmentValueRow]}
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/department_values [get]
func (h *ReportHandler) DepartmentValues(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryDepartmentValues, h.flow.DepartmentValues)
}

// ProductSearch finds the trading bases holding products whose name contains product_name
// @Summary Product Search
// @Tags Queries
// @Produce json
// @Param product_name query string false "Substring of the product name" default(Молоко)
// @Param verbose query bool false "Log the result table"
// @Success 200 {object} dto.APIResponse{data=dto.QueryResult[repository.ProductSearchRow]}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/queries/product_search [get]
func (h *ReportHandler) ProductSearch(c fiber.Ctx) error {
	return serveQuery(h, c, businessflow.QueryProductSearch, h.flow.ProductSearch)
}

// RunAll executes every query with its default parameters
// @Summary Run All Queries
// @Tags Queries
// @Produce json
// @Param verbose query bool false "Log every result table"
// @Success 200 {object} dto.APIResponse{data=dto.RunAllResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/request [get]
func (h *ReportHandler) RunAll(c fiber.Ctx) error {
	var req dto.VerboseRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/request")
	defer cancel()

	res, err := h.flow.RunAll(ctx, req.Verbose)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "All queries executed successfully", res)
}

// ExportXLSX downloads every query result as one workbook
// @Summary Download Report Workbook
// @Tags Queries
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "Excel file"
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/report.xlsx [get]
func (h *ReportHandler) ExportXLSX(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/report.xlsx")
	defer cancel()

	filename, data, err := h.flow.ExportXLSX(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	c.Set("Content-Type", xlsxContentType)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}
