package utils

import "unicode"

// SplitText splits a long string into chunks of approximately 'chunkSize' characters,
// with an 'overlap' to preserve context at boundaries. Chunk boundaries are nudged
// back to the nearest whitespace so words are not cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else {
			end = snapToWhitespace(runes, i, end)
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// snapToWhitespace walks back from 'end' looking for a whitespace rune, so the
// slice ends on a word boundary. It gives up after a quarter of the chunk to
// avoid degenerate splits on text without spaces.
func snapToWhitespace(runes []rune, start, end int) int {
	limit := end - (end-start)/4
	for j := end; j > limit; j-- {
		if unicode.IsSpace(runes[j-1]) {
			return j
		}
	}
	return end
}
