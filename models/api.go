package models

// APIResponse is the envelope of every response served to the browser
type APIResponse struct {
	Status  string      `json:"status"`            // "success" or "error"
	Code    int         `json:"code"`              // HTTP status code
	Message string      `json:"message,omitempty"` // Human-readable message, Italian for user-facing errors
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds detailed error information
type APIError struct {
	Type    string `json:"type,omitempty"`    // e.g., "ValidationError", "BackendError", "NotFound"
	Details string `json:"details,omitempty"` // Backend detail or wrapped error text
	Field   string `json:"field,omitempty"`
}

// Error types used in APIError.Type
const (
	ErrorTypeValidation     = "ValidationError"
	ErrorTypeAuthentication = "AuthenticationError"
	ErrorTypeNotFound       = "NotFound"
	ErrorTypeBackend        = "BackendError"
	ErrorTypeTransport      = "TransportError"
	ErrorTypeInternal       = "InternalError"
)
