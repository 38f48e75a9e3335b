package vector

const (
	// contentKey is the reserved metadata key carrying record content.
	// The double-underscore prefix keeps it out of caller key space.
	contentKey = "__content__"

	// MaxContentLength is the hard cap on stored content. The backend's
	// metadata ceiling is around 40KB for the whole record; the cap leaves
	// headroom for the other attributes.
	MaxContentLength = 30000

	// TruncationMarker is appended when content exceeds MaxContentLength.
	// Truncation is lossy; the original content is not recoverable.
	TruncationMarker = "...[truncated]"
)

// EncodeContent merges content into a copy of metadata under the reserved
// key, truncating it to MaxContentLength first. The input map is not
// modified.
func EncodeContent(content string, metadata map[string]any) map[string]any {
	encoded := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		encoded[k] = v
	}
	if len(content) > MaxContentLength {
		content = content[:MaxContentLength] + TruncationMarker
	}
	encoded[contentKey] = content
	return encoded
}

// DecodeContent is the inverse of EncodeContent: it pops the reserved key
// out of a copy of metadata and returns the content alongside the remaining
// attributes. Missing content decodes as the empty string.
func DecodeContent(metadata map[string]any) (string, map[string]any) {
	rest := make(map[string]any, len(metadata))
	for k, v := range metadata {
		if k == contentKey {
			continue
		}
		rest[k] = v
	}
	content, _ := metadata[contentKey].(string)
	return content, rest
}
