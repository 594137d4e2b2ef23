// Package ingestion loads skill group datasets from files and URLs.
package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when a dataset is neither JSON nor YAML
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrBodyTooLarge is returned when a fetched dataset exceeds the size cap
	ErrBodyTooLarge = errors.New("response body too large")
)

// LoadError reports a dataset that could not be read, parsed, or validated.
type LoadError struct {
	Source  string
	Stage   string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %s: %v", e.Source, e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s: %s", e.Source, e.Stage, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load stages
const (
	StageRead     = "read"
	StageParse    = "parse"
	StageSchema   = "schema"
	StageValidate = "validate"
)
