package core

import (
	"encoding/json"
	"testing"
)

func TestHashID(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := HashID(tt.content)
			id2 := HashID(tt.content)

			if id1 != id2 {
				t.Errorf("HashID() produced different IDs for same content: %s vs %s", id1, id2)
			}
			if len(id1) != 32 {
				t.Errorf("HashID() = %q, want 32 hex characters", id1)
			}
		})
	}
}

func TestHashID_Different(t *testing.T) {
	if HashID("content1") == HashID("content2") {
		t.Errorf("HashID() produced same ID for different content")
	}
}

func TestEntityID_CaseInsensitive(t *testing.T) {
	if EntityID("Alice") != EntityID("alice") {
		t.Errorf("EntityID() should be case-insensitive on the entity name")
	}
}

func TestRelationID_OrderSensitive(t *testing.T) {
	if RelationID("a", "b") == RelationID("b", "a") {
		t.Errorf("RelationID() should distinguish (a,b) from (b,a)")
	}
	if RelationID("A", "B") != RelationID("a", "b") {
		t.Errorf("RelationID() should be case-insensitive on endpoints")
	}
}

func TestIDPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		prefix string
	}{
		{name: "document", id: DocumentID("text"), prefix: "doc-"},
		{name: "chunk", id: ChunkID("text"), prefix: "chunk-"},
		{name: "entity", id: EntityID("text"), prefix: "ent-"},
		{name: "relation", id: RelationID("a", "b"), prefix: "rel-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.id) <= len(tt.prefix) || tt.id[:len(tt.prefix)] != tt.prefix {
				t.Errorf("got %q, want prefix %q", tt.id, tt.prefix)
			}
		})
	}
}

func TestParseQueryMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    QueryMode
		wantErr bool
	}{
		{name: "local", input: "local", want: QueryModeLocal},
		{name: "global", input: "global", want: QueryModeGlobal},
		{name: "hybrid", input: "hybrid", want: QueryModeHybrid},
		{name: "empty defaults to hybrid", input: "", want: QueryModeHybrid},
		{name: "unknown mode", input: "naive", wantErr: true},
		{name: "case sensitive", input: "Local", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueryMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseQueryMode(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQueryMode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseQueryMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeywordList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "array of strings", input: `["go", "graphs"]`, want: []string{"go", "graphs"}},
		{name: "comma-separated string", input: `"go, graphs,  vectors"`, want: []string{"go", "graphs", "vectors"}},
		{name: "empty array", input: `[]`, want: []string{}},
		{name: "empty string", input: `""`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got KeywordList
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Unmarshal(%s) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Unmarshal(%s)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKeywordList_UnmarshalJSON_Invalid(t *testing.T) {
	var got KeywordList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Errorf("Unmarshal(42) expected error")
	}
}

func TestKeywordList_Join(t *testing.T) {
	k := KeywordList{"go", "graphs"}
	if got := k.Join(); got != "go, graphs" {
		t.Errorf("Join() = %q, want %q", got, "go, graphs")
	}
}

func TestRelation_Tuple(t *testing.T) {
	r := &Relation{Source: "alice", Target: "acme"}
	if got := r.Tuple(); got != "(alice->acme)" {
		t.Errorf("Tuple() = %q, want %q", got, "(alice->acme)")
	}
}
