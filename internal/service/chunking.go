package service

// DefaultChunkSize is the chunk length used for knowledge ingestion.
const DefaultChunkSize = 1000

// SplitText slices text into fixed-size rune chunks, left to right, with no
// overlap and no gaps: concatenating the result reproduces the input exactly,
// and the last chunk may be shorter. Empty input yields no chunks.
//
// Chunks are not trimmed here. Whitespace-only chunks are filtered by the
// ingestion loop, which still counts them as attempted.
func SplitText(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
