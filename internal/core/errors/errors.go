package errors

const (
	HttpInternalError      = "internal_error"
	HttpInvalidUploadError = "invalid_upload"
	HttpInvalidQueryError  = "invalid_query"
	HttpPersistenceError   = "persistence_failed"
	HttpUnauthorizedError  = "unauthorized"
)

// ErrorResponse is the error response body for all API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
