package pinecone

import "errors"

var (
	// ErrAPIKeyRequired is returned when no Pinecone API key is configured.
	ErrAPIKeyRequired = errors.New("pinecone API key required")

	// ErrIndexNameRequired is returned when no index name is configured.
	ErrIndexNameRequired = errors.New("pinecone index name required")

	// ErrNamespaceRequired is returned when no namespace is configured.
	ErrNamespaceRequired = errors.New("pinecone namespace required")
)
