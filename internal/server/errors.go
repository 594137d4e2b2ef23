package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnknownRegion indicates a region fragment that does not exist
type ErrUnknownRegion struct {
	Name string
}

func (e *ErrUnknownRegion) Error() string {
	return fmt.Sprintf("unknown region: %s", e.Name)
}

// ErrDatasetUnavailable indicates the dataset source could not be read
type ErrDatasetUnavailable struct {
	Cause error
}

func (e *ErrDatasetUnavailable) Error() string {
	return fmt.Sprintf("dataset unavailable: %v", e.Cause)
}

func (e *ErrDatasetUnavailable) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var unknownRegion *ErrUnknownRegion
	var unavailable *ErrDatasetUnavailable
	switch {
	case errors.As(err, &unknownRegion):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
