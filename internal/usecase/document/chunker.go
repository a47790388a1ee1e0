package document

import "errors"

// ErrInvalidChunkConfig is returned when the overlap is not smaller than
// the chunk size; such a configuration would never advance the window.
var ErrInvalidChunkConfig = errors.New("chunk overlap must be smaller than chunk size")

type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker validates the window configuration up front so splitting
// itself can never loop.
func NewChunker(chunkSize, chunkOverlap int) (*Chunker, error) {
	if chunkSize <= 0 || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, ErrInvalidChunkConfig
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}, nil
}

// Split emits fixed-size windows advancing by chunkSize-chunkOverlap.
// Windows are measured in runes, never bytes, so a multi-byte character
// can't be cut in half at a window edge. The last window is clamped to
// the text length, so the union of chunks always covers the full text.
// Empty text yields zero chunks. The text is split as-is; no trimming
// or normalization, so consecutive chunks reconstruct the input exactly
// once overlap is removed.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.chunkSize - c.chunkOverlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
