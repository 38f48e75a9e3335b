package core

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// HashID generates a deterministic hex identifier from text content using
// BLAKE2b hashing. Identical content always produces the same identifier.
func HashID(text string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentID generates the identifier for a document from its full content.
func DocumentID(content string) string {
	return "doc-" + HashID(content)
}

// ChunkID generates the identifier for a text chunk from its content.
func ChunkID(content string) string {
	return "chunk-" + HashID(content)
}

// EntityID generates the identifier for an entity from its name.
func EntityID(name string) string {
	return "ent-" + HashID(strings.ToLower(name))
}

// RelationID generates the identifier for a relation from its endpoints.
// The tuple is order-sensitive: (a, b) and (b, a) are distinct relations.
func RelationID(source, target string) string {
	return "rel-" + HashID(strings.ToLower(source)+"->"+strings.ToLower(target))
}

// QueryMode selects the retrieval strategy for answering a query.
type QueryMode string

const (
	// QueryModeLocal retrieves entity-centric context.
	QueryModeLocal QueryMode = "local"
	// QueryModeGlobal retrieves relationship-centric context.
	QueryModeGlobal QueryMode = "global"
	// QueryModeHybrid combines local and global retrieval.
	QueryModeHybrid QueryMode = "hybrid"
)

// ParseQueryMode validates and converts a mode string.
// An empty string defaults to hybrid.
func ParseQueryMode(s string) (QueryMode, error) {
	switch QueryMode(s) {
	case QueryModeLocal, QueryModeGlobal, QueryModeHybrid:
		return QueryMode(s), nil
	case "":
		return QueryModeHybrid, nil
	default:
		return "", ErrInvalidQueryMode
	}
}

// KeywordList holds document keywords. It decodes from either a JSON array
// of strings or a single comma-separated string, since callers send both.
type KeywordList []string

// UnmarshalJSON implements json.Unmarshaler.
func (k *KeywordList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	parts := strings.Split(single, ",")
	list = make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	*k = list
	return nil
}

// Join returns the keywords joined with ", ".
func (k KeywordList) Join() string {
	return strings.Join(k, ", ")
}

// DocumentMetadata carries caller-supplied context for an ingested document.
type DocumentMetadata struct {
	Source   string      `json:"source,omitempty"`
	Filename string      `json:"filename,omitempty"`
	Summary  string      `json:"summary,omitempty"`
	Keywords KeywordList `json:"keywords,omitempty"`
}

// Document is the persisted record of an ingested document. It tracks the
// vector identifiers produced during indexing so they can be removed later.
type Document struct {
	Id          string
	Content     string
	Source      string
	Filename    string
	ChunkIds    []string
	EntityIds   []string
	RelationIds []string
	InsertedAt  time.Time
}

// Entity is a node in the knowledge graph, extracted from document text.
type Entity struct {
	Id          string
	Name        string
	Type        string
	Description string
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Relation is a directed edge between two entities in the knowledge graph.
type Relation struct {
	Id          string
	Source      string
	Target      string
	Description string
	Strength    int // 1-10, how strongly the text supports the relation
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Tuple returns a string representation of the relation as "(Source->Target)".
// This is used for generating deterministic IDs and log output.
func (r *Relation) Tuple() string {
	return "(" + r.Source + "->" + r.Target + ")"
}
