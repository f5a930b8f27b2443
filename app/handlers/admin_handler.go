package handlers

import (
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AdminHandlerInterface defines fixture reloads and index maintenance
type AdminHandlerInterface interface {
	LoadSeedFixtures(c fiber.Ctx) error
	LoadRandomFixtures(c fiber.Ctx) error
	CreateIndexes(c fiber.Ctx) error
	DropIndexes(c fiber.Ctx) error
	ListIndexes(c fiber.Ctx) error
	Routes() []Route
}

// AdminHandler serves the /admin endpoints
type AdminHandler struct {
	baseHandler
	fixtureFlow businessflow.FixtureFlow
	schemaFlow  businessflow.SchemaFlow
}

func NewAdminHandler(fixtureFlow businessflow.FixtureFlow, schemaFlow businessflow.SchemaFlow, logger *zap.Logger, timeout time.Duration) AdminHandlerInterface {
	return &AdminHandler{
		baseHandler: newBaseHandler(logger, timeout),
		fixtureFlow: fixtureFlow,
		schemaFlow:  schemaFlow,
	}
}

func (h *AdminHandler) Routes() []Route {
	return []Route{
		{Method: fiber.MethodPost, Path: "/admin/fixtures/seed", Name: "fixtures_seed", Handler: h.LoadSeedFixtures},
		{Method: fiber.MethodPost, Path: "/admin/fixtures/random", Name: "fixtures_random", Handler: h.LoadRandomFixtures},
		{Method: fiber.MethodGet, Path: "/admin/indexes", Name: "indexes_list", Handler: h.ListIndexes},
		{Method: fiber.MethodPost, Path: "/admin/indexes", Name: "indexes_create", Handler: h.CreateIndexes},
		{Method: fiber.MethodDelete, Path: "/admin/indexes", Name: "indexes_drop", Handler: h.DropIndexes},
	}
}

// LoadSeedFixtures replaces all rows with the deterministic dataset
// @Summary Load Seed Fixtures
// @Tags Admin Fixtures
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LoadReport}
// @Failure 409 {object} dto.APIResponse "Another reload is running"
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/admin/fixtures/seed [post]
func (h *AdminHandler) LoadSeedFixtures(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/fixtures/seed")
	defer cancel()

	report, err := h.fixtureFlow.LoadSeed(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Seed fixtures loaded successfully", report)
}

// LoadRandomFixtures replaces all rows with a generated dataset.
// The JSON body is optional; query parameters are accepted as well.
// @Summary Load Random Fixtures
// @Tags Admin Fixtures
// @Accept json
// @Produce json
// @Param request body dto.LoadRandomFixturesRequest false "Record count and generator seed"
// @Success 200 {object} dto.APIResponse{data=dto.LoadReport}
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Another reload is running"
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/admin/fixtures/random [post]
func (h *AdminHandler) LoadRandomFixtures(c fiber.Ctx) error {
	var req dto.LoadRandomFixturesRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
		}
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/fixtures/random")
	defer cancel()

	report, err := h.fixtureFlow.LoadRandom(ctx, req)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Random fixtures loaded successfully", report)
}

// @Summary Create Report Indexes
// @Tags Admin Indexes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.IndexStatusResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/admin/indexes [post]
func (h *AdminHandler) CreateIndexes(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/indexes")
	defer cancel()

	res, err := h.schemaFlow.CreateIndexes(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Indexes created successfully", res)
}

// @Summary Drop Report Indexes
// @Tags Admin Indexes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.IndexStatusResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/admin/indexes [delete]
func (h *AdminHandler) DropIndexes(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/indexes")
	defer cancel()

	res, err := h.schemaFlow.DropIndexes(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Indexes dropped successfully", res)
}

// @Summary List Report Indexes
// @Tags Admin Indexes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.IndexStatusResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /api/v1/admin/indexes [get]
func (h *AdminHandler) ListIndexes(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/indexes")
	defer cancel()

	res, err := h.schemaFlow.ListIndexes(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Indexes retrieved successfully", res)
}
