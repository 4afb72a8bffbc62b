package domain

import "net/http"

// ResultStatus is the outcome flag carried by every Result.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "Success"
	StatusFailed  ResultStatus = "Failed"
)

// Result is the uniform envelope returned by every service operation.
// A Failed result never carries data, and StatusCode always maps to an HTTP status.
type Result[T any] struct {
	Status     ResultStatus `json:"status"`
	Message    string       `json:"message"`
	Data       *T           `json:"data,omitempty"`
	StatusCode int          `json:"statusCode"`
}

// Succeed builds a Success result with status code 200.
func Succeed[T any](message string, data T) Result[T] {
	return Result[T]{
		Status:     StatusSuccess,
		Message:    message,
		Data:       &data,
		StatusCode: http.StatusOK,
	}
}

// Fail builds a Failed result. Codes outside the 4xx/5xx range are coerced to 500.
func Fail[T any](code int, message string) Result[T] {
	if code < http.StatusBadRequest || code > 599 {
		code = http.StatusInternalServerError
	}
	return Result[T]{
		Status:     StatusFailed,
		Message:    message,
		StatusCode: code,
	}
}

// OK reports whether the result is a Success.
func (r Result[T]) OK() bool {
	return r.Status == StatusSuccess
}
