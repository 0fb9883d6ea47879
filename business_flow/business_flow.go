// Package businessflow contains the use-case layer: signup, login,
// profile management, search, sessions and admin reporting. Flows
// depend on repository interfaces and never on fiber.
package businessflow

import "context"

type requestIDKeyType string

const RequestIDKey requestIDKeyType = "request_id"

// ClientMetadata carries transport facts the flows record but never
// act on.
type ClientMetadata struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// NewClientMetadata creates client metadata from transport facts.
func NewClientMetadata(ipAddress, userAgent, requestID string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
		RequestID: requestID,
	}
}

// RequestIDFromContext returns the request id placed by the transport
// layer, or "" when none was set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
