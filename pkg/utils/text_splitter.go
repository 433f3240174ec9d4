package utils

import "strings"

// SplitText splits a long string into chunks of approximately chunkSize
// characters with an overlap to preserve context at boundaries. Chunks
// break at the last space before the limit when one is close enough.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else {
			// Back up to a word boundary unless that would cost too much.
			slice := string(runes[i:end])
			if idx := strings.LastIndexByte(slice, ' '); idx > chunkSize*3/4 {
				end = i + len([]rune(slice[:idx]))
			}
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
