package handlers

import (
	"strconv"
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// CatalogHandlerInterface defines the navigation endpoints
type CatalogHandlerInterface interface {
	GetStore(c fiber.Ctx) error
	GetDepartment(c fiber.Ctx) error
	ListStoreDepartments(c fiber.Ctx) error
	Routes() []Route
}

// CatalogHandler serves stores and departments with their related rows
type CatalogHandler struct {
	baseHandler
	flow businessflow.CatalogFlow
}

func NewCatalogHandler(flow businessflow.CatalogFlow, logger *zap.Logger, timeout time.Duration) CatalogHandlerInterface {
	return &CatalogHandler{
		baseHandler: newBaseHandler(logger, timeout),
		flow:        flow,
	}
}

func (h *CatalogHandler) Routes() []Route {
	return []Route{
		{Method: fiber.MethodGet, Path: "/stores/:id", Name: "store", Handler: h.GetStore},
		{Method: fiber.MethodGet, Path: "/stores/:id/departments", Name: "store_departments", Handler: h.ListStoreDepartments},
		{Method: fiber.MethodGet, Path: "/departments/:id", Name: "department", Handler: h.GetDepartment},
	}
}

func (h *CatalogHandler) bindID(c fiber.Ctx) (uint, bool, error) {
	var req dto.EntityIDRequest
	if err := c.Bind().URI(&req); err != nil {
		return 0, false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_REQUEST", err.Error())
	}
	if ok, err := h.validate(c, &req); !ok {
		return 0, false, err
	}
	return uint(req.ID), true, nil
}

// GetStore returns a store with its class, director and departments
// @Summary Get Store
// @Tags Catalog
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} dto.APIResponse{data=dto.StoreDTO}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/stores/{id} [get]
func (h *CatalogHandler) GetStore(c fiber.Ctx) error {
	id, ok, err := h.bindID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/stores/"+strconv.FormatUint(uint64(id), 10))
	defer cancel()

	store, err := h.flow.GetStore(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Store retrieved successfully", store)
}

// GetDepartment returns a department with its store, manager and stock
// @Summary Get Department
// @Tags Catalog
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentDTO}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/departments/{id} [get]
func (h *CatalogHandler) GetDepartment(c fiber.Ctx) error {
	id, ok, err := h.bindID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/departments/"+strconv.FormatUint(uint64(id), 10))
	defer cancel()

	department, err := h.flow.GetDepartment(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Department retrieved successfully", department)
}

// ListStoreDepartments returns the departments of a store with their managers
// @Summary List Store Departments
// @Tags Catalog
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentSummaryDTO}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/v1/stores/{id}/departments [get]
func (h *CatalogHandler) ListStoreDepartments(c fiber.Ctx) error {
	id, ok, err := h.bindID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/stores/"+strconv.FormatUint(uint64(id), 10)+"/departments")
	defer cancel()

	departments, err := h.flow.ListDepartments(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Departments retrieved successfully", departments)
}
