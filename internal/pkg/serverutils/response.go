package serverutils

// ApiResponse is the standard success envelope.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) ApiResponse {
	return ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse is the standard failure envelope produced by the error
// handler middleware. Only a short human-readable message crosses the
// boundary; internal error detail stays in the logs.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
