package response

// Response represents a standard API response format
type Response struct {
	Status     string `json:"status"`      // "success" or "error"
	StatusCode int    `json:"status_code"` // HTTP status code
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data any) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// Page is the data payload of a paginated listing. Items are published under key.
func Page(key string, items any, total int64, page, limit int) map[string]any {
	return map[string]any{
		key:     items,
		"total": total,
		"page":  page,
		"limit": limit,
	}
}
