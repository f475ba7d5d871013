package serverutils

// ApiError is an internal error with a caller-facing status code and
// message. Services return it; the error handler middleware translates it.
type ApiError struct {
	Code    int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}
