package server

import (
	"context"

	"github.com/jonathan/skillboard/internal/types"
)

// DatasetSource supplies the dataset for each request.
type DatasetSource interface {
	Dataset(ctx context.Context) (types.Dataset, error)
}

// Pinger is implemented by sources that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StaticSource serves a dataset loaded once at startup.
type StaticSource struct {
	dataset types.Dataset
}

// NewStaticSource wraps an in-memory dataset.
func NewStaticSource(dataset types.Dataset) *StaticSource {
	return &StaticSource{dataset: dataset}
}

// Dataset returns the wrapped dataset.
func (s *StaticSource) Dataset(_ context.Context) (types.Dataset, error) {
	return s.dataset, nil
}
