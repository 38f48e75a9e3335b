package engine

import "strings"

const (
	defaultChunkSize    = 1200
	defaultChunkOverlap = 100
)

// splitText splits text into chunks of at most size runes with the given
// overlap between consecutive chunks. Where possible a chunk ends at a
// whitespace boundary so words are not cut in half. Whitespace-only chunks
// are dropped.
func splitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	step := size - overlap

	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		} else {
			// Back up to the last whitespace so the cut lands between
			// words, but never shrink the chunk below half its size.
			boundary := end
			for boundary > start+size/2 && !isSpace(runes[boundary-1]) {
				boundary--
			}
			if boundary > start+size/2 {
				end = boundary
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}
	}

	return chunks
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
