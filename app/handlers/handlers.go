// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/amirphl/retail-inventory/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"go.uber.org/zap"
)

// DefaultRequestTimeout bounds the flow call of a single request
const DefaultRequestTimeout = 30 * time.Second

// baseHandler carries what every handler needs to answer a request
type baseHandler struct {
	validator *validator.Validate
	logger    *zap.Logger
	timeout   time.Duration
}

func newBaseHandler(logger *zap.Logger, timeout time.Duration) baseHandler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return baseHandler{
		validator: validator.New(),
		logger:    logger,
		timeout:   timeout,
	}
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:      errorCode,
			Details:   details,
			RequestID: requestid.FromContext(c),
		},
	})
}

func (h *baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// validate runs struct validation and writes the 400 response when it fails.
// The returned bool reports whether the request may proceed.
func (h *baseHandler) validate(c fiber.Ctx, req any) (bool, error) {
	err := h.validator.Struct(req)
	if err == nil {
		return true, nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, getValidationErrorMessage(fe))
	}
	return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
}

// flowError maps a business error to its HTTP status and logs anything unexpected
func (h *baseHandler) flowError(c fiber.Ctx, err error) error {
	be, ok := businessflow.AsBusinessError(err)
	if !ok {
		h.logger.Error("unhandled flow error", zap.String("path", c.Path()), zap.Error(err))
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "An internal server error occurred", "INTERNAL_ERROR", nil)
	}

	status := fiber.StatusInternalServerError
	switch {
	case businessflow.IsStoreNotFound(err), businessflow.IsDepartmentNotFound(err):
		status = fiber.StatusNotFound
	case businessflow.IsReloadInProgress(err):
		status = fiber.StatusConflict
	case businessflow.IsInvalidDataset(err), businessflow.IsInvalidRecordCount(err):
		status = fiber.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = fiber.StatusGatewayTimeout
	}

	if status >= fiber.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("code", be.Code),
			zap.String("request_id", requestid.FromContext(c)),
			zap.Error(err))
		return h.ErrorResponse(c, status, be.Message, be.Code, nil)
	}
	var details any
	if be.Err != nil {
		details = be.Err.Error()
	}
	return h.ErrorResponse(c, status, be.Message, be.Code, details)
}

// Route is one entry of the registration table mounted under /api/v1
type Route struct {
	Method  string
	Path    string
	Name    string
	Handler fiber.Handler
}

// createRequestContext detaches the flow from fasthttp's request lifetime and bounds it
func (h *baseHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, requestid.FromContext(c))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx, cancel
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
