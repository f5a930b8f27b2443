package utils

import "context"

type contextKey string

// Request scoped values attached by the handlers
const (
	RequestIDKey contextKey = "request_id"
	UserAgentKey contextKey = "user_agent"
	IPAddressKey contextKey = "ip_address"
	EndpointKey  contextKey = "endpoint"
)

// RequestID returns the request id stored in ctx, or an empty string
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// UserAgent returns the client user agent stored in ctx, or an empty string
func UserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(UserAgentKey).(string); ok {
		return v
	}
	return ""
}

// IPAddress returns the client address stored in ctx, or an empty string
func IPAddress(ctx context.Context) string {
	if v, ok := ctx.Value(IPAddressKey).(string); ok {
		return v
	}
	return ""
}

// Endpoint returns the endpoint stored in ctx, or an empty string
func Endpoint(ctx context.Context) string {
	if v, ok := ctx.Value(EndpointKey).(string); ok {
		return v
	}
	return ""
}
