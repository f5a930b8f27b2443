// Package dto holds the request and response shapes of the HTTP surface
package dto

// APIResponse is the envelope every endpoint answers with, except the workbook download
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// ErrorDetail carries a stable error code; RequestID matches the X-Request-ID header
type ErrorDetail struct {
	Code      string `json:"code"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
