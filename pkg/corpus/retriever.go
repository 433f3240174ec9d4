package corpus

import (
	"sort"
	"strings"
	"unicode"
)

// MinChunkLength is the shortest fragment kept by SplitIntoChunks. Fragments
// at or below this length are dropped, never merged into a neighbour.
const MinChunkLength = 50

// minTermLength filters noise words out of the query before scoring.
const minTermLength = 3

// Chunk is one retrieval unit of the doctrine corpus. Chunks are recomputed
// per invocation and never persisted.
type Chunk struct {
	Index int    // position in the original corpus, used for stable ordering
	Text  string // trimmed content
}

// SplitIntoChunks splits the corpus on the given delimiter into ordered,
// trimmed chunks. Fragments of MinChunkLength characters or fewer are
// discarded unconditionally.
func SplitIntoChunks(corpus, delimiter string) []Chunk {
	if corpus == "" || delimiter == "" {
		return nil
	}

	var chunks []Chunk
	for _, part := range strings.Split(corpus, delimiter) {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) <= MinChunkLength {
			continue
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Text: trimmed})
	}
	return chunks
}

// RetrieveRelevant scores chunks against the message by keyword overlap and
// returns up to maxChunks of the best-scoring ones. Scoring: +1 per query
// term contained in the chunk, +2 per doctrine term present in both message
// and chunk. Zero-score chunks are never returned. The sort is stable so
// ties keep corpus order, making the result deterministic for fixed inputs.
func RetrieveRelevant(message string, chunks []Chunk, doctrineTerms []string, maxChunks int) []Chunk {
	if maxChunks <= 0 || len(chunks) == 0 {
		return nil
	}

	terms := tokenize(message)
	lowerMessage := strings.ToLower(message)

	type scored struct {
		chunk Chunk
		score int
	}

	ranked := make([]scored, 0, len(chunks))
	for _, chunk := range chunks {
		lowerChunk := strings.ToLower(chunk.Text)

		score := 0
		for _, term := range terms {
			if strings.Contains(lowerChunk, term) {
				score++
			}
		}
		for _, dt := range doctrineTerms {
			dt = strings.ToLower(dt)
			if dt == "" {
				continue
			}
			if strings.Contains(lowerMessage, dt) && strings.Contains(lowerChunk, dt) {
				score += 2
			}
		}

		if score > 0 {
			ranked = append(ranked, scored{chunk: chunk, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > maxChunks {
		ranked = ranked[:maxChunks]
	}

	result := make([]Chunk, len(ranked))
	for i, r := range ranked {
		result[i] = r.chunk
	}
	return result
}

// tokenize lowercases the message and keeps alphanumeric runs longer than
// minTermLength characters.
func tokenize(message string) []string {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}
