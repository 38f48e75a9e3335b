package vector

import "errors"

var (
	// ErrEmptyNamespace indicates a domain resolved to an empty partition key.
	ErrEmptyNamespace = errors.New("namespace cannot be empty")

	// ErrDuplicateNamespace indicates two domains share a partition key.
	ErrDuplicateNamespace = errors.New("duplicate namespace")
)
