package httpErrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	pkgErrors "github.com/pkg/errors"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("not found")
	ErrUnprocessableMedia = errors.New("unprocessable media")
	ErrNoFile             = errors.New("no file uploaded")
	ErrEmptyFilename      = errors.New("empty filename")
	ErrInvalidID          = errors.New("invalid video id")
	ErrRequestTimeout     = errors.New("request timeout")
	ErrInternalServer     = errors.New("internal server error")
)

type RestErr interface {
	Status() int
	Error() string
	Causes() interface{}
}

type RestError struct {
	ErrStatus int         `json:"status,omitempty"`
	ErrError  string      `json:"error,omitempty"`
	ErrCauses interface{} `json:"causes,omitempty"`
}

func (e RestError) Error() string {
	return fmt.Sprintf("status: %d - errors: %s - causes: %v", e.ErrStatus, e.ErrError, e.ErrCauses)
}

func (e RestError) Status() int {
	return e.ErrStatus
}

func (e RestError) Causes() interface{} {
	return e.ErrCauses
}

func NewRestError(status int, err string, causes interface{}) RestErr {
	return RestError{ErrStatus: status, ErrError: err, ErrCauses: causes}
}

func NewBadRequestError(causes interface{}) RestErr {
	return RestError{ErrStatus: http.StatusBadRequest, ErrError: ErrBadRequest.Error(), ErrCauses: causes}
}

func NewNotFoundError(causes interface{}) RestErr {
	return RestError{ErrStatus: http.StatusNotFound, ErrError: ErrNotFound.Error(), ErrCauses: causes}
}

func NewUnprocessableEntityError(causes interface{}) RestErr {
	return RestError{ErrStatus: http.StatusUnprocessableEntity, ErrError: ErrUnprocessableMedia.Error(), ErrCauses: causes}
}

func NewInternalServerError(causes interface{}) RestErr {
	return RestError{ErrStatus: http.StatusInternalServerError, ErrError: ErrInternalServer.Error(), ErrCauses: causes}
}

// ParseErrors maps an error chain built with pkg/errors or fmt.Errorf("%w") to a RestErr.
func ParseErrors(err error) RestErr {
	var restErr RestError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &restErr):
		return restErr
	case errors.As(err, &validationErrs):
		return NewBadRequestError(validationErrs.Error())
	case errors.Is(err, ErrNoFile), errors.Is(err, ErrEmptyFilename), errors.Is(err, ErrInvalidID):
		return NewRestError(http.StatusBadRequest, pkgErrors.Cause(err).Error(), nil)
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError(err.Error())
	case errors.Is(err, ErrUnprocessableMedia):
		return NewUnprocessableEntityError(nil)
	case errors.Is(err, context.DeadlineExceeded):
		return NewRestError(http.StatusRequestTimeout, ErrRequestTimeout.Error(), nil)
	default:
		// the chain carries call paths and file names; it is logged, not returned
		return NewInternalServerError(nil)
	}
}

// ErrorResponse returns the status code and body for an error.
func ErrorResponse(err error) (int, interface{}) {
	restErr := ParseErrors(err)
	return restErr.Status(), restErr
}
