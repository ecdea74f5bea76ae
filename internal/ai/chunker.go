package ai

import "strings"

// approxCharsPerToken is the budget heuristic used to split long inputs. It
// deliberately undershoots for Latin-script text so chunks stay inside the
// model window.
const approxCharsPerToken = 4

// chunkText splits text into pieces that fit the operation's token budget,
// breaking on whitespace so no entity surface form is cut mid-word. The
// pieces concatenate back to the input's word sequence in order; callers tag
// each piece and append the entity slices in the same order. maxTokens <= 0
// disables chunking.
func chunkText(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		return []string{text}
	}

	maxChars := maxTokens * approxCharsPerToken
	if len(text) <= maxChars {
		return []string{text}
	}

	words := strings.Fields(text)
	var chunks []string
	var current strings.Builder
	for _, word := range words {
		// A single oversized word still becomes its own chunk.
		if current.Len() > 0 && current.Len()+1+len(word) > maxChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}
