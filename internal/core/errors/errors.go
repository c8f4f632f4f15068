package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpPayloadTooLargeError   = "payload_too_large"
	HttpInvalidRowsError       = "invalid_rows"
	HttpUnsupportedEngineError = "unsupported_engine"
	HttpInvalidColumnError     = "invalid_date_column"
	HttpInvalidPeriodsError    = "invalid_periods"
	HttpInvalidOrderError      = "invalid_max_order"
	HttpDegenerateScaleError   = "degenerate_scale"
	HttpRecipeNotFoundError    = "recipe_not_found"
)

// ErrorResponse is the error response body for API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
