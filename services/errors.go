package services

import "net/http"

// Error kinds surfaced to controllers.
const (
	KindValidation        = "validation"
	KindStock             = "stock"
	KindSignature         = "signature"
	KindNotFound          = "not_found"
	KindIllegalTransition = "illegal_transition"
	KindGateway           = "gateway"
	KindConflict          = "conflict"
	KindInternal          = "internal"
)

// ServiceError is a typed error with an HTTP status code and a taxonomy kind.
type ServiceError struct {
	StatusCode int
	Kind       string
	Message    string
	Err        error
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Err }

func NewValidationError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

func NewStockError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Kind: KindStock, Message: msg}
}

func NewSignatureError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Kind: KindSignature, Message: msg}
}

func NewNotFoundError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

func NewIllegalTransitionError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Kind: KindIllegalTransition, Message: msg}
}

func NewGatewayError(msg string, err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadGateway, Kind: KindGateway, Message: msg, Err: err}
}

func NewConflictError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Kind: KindConflict, Message: msg}
}

func NewInternalError(msg string, err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Kind: KindInternal, Message: msg, Err: err}
}
