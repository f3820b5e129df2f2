package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Chunk is one span of source text produced by the external segmentation
// step. Immutable once created; IDs are "chunk_<n>" with n monotonic per
// corpus.
type Chunk struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Sequence returns the numeric index encoded in the chunk id.
func (c Chunk) Sequence() (int, error) {
	return ChunkSequence(c.ID)
}

// ChunkSequence parses the "<n>" out of a "chunk_<n>" identifier.
func ChunkSequence(chunkID string) (int, error) {
	idx := strings.LastIndex(chunkID, "_")
	if idx < 0 {
		return 0, fmt.Errorf("malformed chunk id %q", chunkID)
	}
	n, err := strconv.Atoi(chunkID[idx+1:])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed chunk id %q", chunkID)
	}
	return n, nil
}
