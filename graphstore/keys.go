package graphstore

import "github.com/poiesic/kgraph/core"

// Key prefixes for different record types
const (
	documentPrefix    = "kgdoc"
	entityPrefix      = "kgent"
	relationPrefix    = "kgrel"
	relationIdxPrefix = "kgreli"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id string) []byte {
	return []byte(documentPrefix + ":" + id)
}

// makeEntityKey generates a key for an entity by ID.
func makeEntityKey(id string) []byte {
	return []byte(entityPrefix + ":" + id)
}

// makeRelationKey generates a key for a relation by ID.
func makeRelationKey(id string) []byte {
	return []byte(relationPrefix + ":" + id)
}

// makeRelationIdxKey generates a composite key for the per-entity relation
// index. Format: prefix:entityID:relationID
func makeRelationIdxKey(entityName, relationID string) []byte {
	return []byte(relationIdxPrefix + ":" + core.EntityID(entityName) + ":" + relationID)
}

// makePartialRelationIdxKey generates the index prefix for one entity.
func makePartialRelationIdxKey(entityName string) []byte {
	return []byte(relationIdxPrefix + ":" + core.EntityID(entityName) + ":")
}
