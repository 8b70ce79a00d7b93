package client

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

var (
	// ErrBadRequest defines the "bad request" error.
	ErrBadRequest = errors.New("bad request")
	// ErrInternalServerError defines the "internal server error" error.
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound defines the "not found" error.
	ErrNotFound = errors.New("not found")
	// ErrConflict defines the "conflict" error (e.g. an invalid argument for the node).
	ErrConflict = errors.New("conflict")
	// ErrUnknownError defines the "unknown error" error.
	ErrUnknownError = errors.New("unknown error")
)

func interpretError(response *resty.Response) error {
	message := http.StatusText(response.StatusCode())
	if errorResponse, ok := response.Error().(*jsonmodels.ErrorResponse); ok && errorResponse.Message != "" {
		message = errorResponse.Message
	}

	switch response.StatusCode() {
	case http.StatusInternalServerError:
		return errors.Wrap(ErrInternalServerError, message)
	case http.StatusNotFound:
		return errors.Wrapf(ErrNotFound, "%s: %s", response.Request.URL, message)
	case http.StatusBadRequest:
		return errors.Wrap(ErrBadRequest, message)
	case http.StatusConflict:
		return errors.Wrap(ErrConflict, message)
	}

	return errors.Wrapf(ErrUnknownError, "status %d: %s", response.StatusCode(), message)
}
