package ingest

import "errors"

var (
	// ErrSourceRequired is returned when no engine source is provided.
	ErrSourceRequired = errors.New("engine source required")
)
