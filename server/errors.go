package server

import "errors"

var (
	// ErrEngineSourceRequired is returned when no engine source is provided.
	ErrEngineSourceRequired = errors.New("engine source required")

	// ErrIngestorRequired is returned when no ingestor is provided.
	ErrIngestorRequired = errors.New("ingestor required")
)
