package services

import "strings"

// splitText cuts text into fixed-size chunks with overlap. Sizes are in
// runes so a boundary never splits a UTF-8 sequence. Chunks are
// whitespace-trimmed and empty chunks are dropped, so consecutive
// blank regions do not produce entries.
//
// The window starts at 0 and advances by chunkSize-overlap until it
// passes the end of the text.
func splitText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return nil
	}

	stride := chunkSize - overlap
	chunks := make([]string, 0, total/max(stride, 1)+1)

	for start := 0; start < total; start += stride {
		end := start + chunkSize
		if end > total {
			end = total
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Guard against a non-advancing window.
		if stride <= 0 {
			break
		}
	}

	return chunks
}
