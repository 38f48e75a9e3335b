package vector

import "fmt"

// Domain identifies one of the three logical kinds of vector the engine
// stores. The set is closed; constructing other values is a programming
// error.
type Domain string

const (
	// DomainEntities holds extracted entity descriptions.
	DomainEntities Domain = "entities"
	// DomainRelationships holds relationship descriptions between entities.
	DomainRelationships Domain = "relationships"
	// DomainChunks holds original text chunks.
	DomainChunks Domain = "chunks"
)

// Namespaces maps each vector domain to an isolated partition key in the
// backing index. Separate partitions keep vectors from different domains
// out of each other's similarity searches even when IDs collide.
type Namespaces struct {
	Entities      string
	Relationships string
	Chunks        string
}

// DefaultNamespaces returns the default partition keys per domain.
func DefaultNamespaces() Namespaces {
	return Namespaces{
		Entities:      "graph_entities",
		Relationships: "graph_relationships",
		Chunks:        "graph_chunks",
	}
}

// Validate checks that every namespace is non-empty and that no two domains
// share a partition. Overrides are applied before validation, so a bad
// configuration is rejected at construction rather than at call time.
func (n Namespaces) Validate() error {
	names := map[string]Domain{}
	for _, pair := range []struct {
		domain Domain
		name   string
	}{
		{DomainEntities, n.Entities},
		{DomainRelationships, n.Relationships},
		{DomainChunks, n.Chunks},
	} {
		if pair.name == "" {
			return fmt.Errorf("%w: %s", ErrEmptyNamespace, pair.domain)
		}
		if other, ok := names[pair.name]; ok {
			return fmt.Errorf("%w: %q used by both %s and %s",
				ErrDuplicateNamespace, pair.name, other, pair.domain)
		}
		names[pair.name] = pair.domain
	}
	return nil
}

// For returns the partition key for a domain. It is pure and total over the
// three known domains; an unknown domain panics, since Domain is a closed
// set and such a value can only come from a programming error.
func (n Namespaces) For(d Domain) string {
	switch d {
	case DomainEntities:
		return n.Entities
	case DomainRelationships:
		return n.Relationships
	case DomainChunks:
		return n.Chunks
	default:
		panic(fmt.Sprintf("vector: unknown domain %q", d))
	}
}
