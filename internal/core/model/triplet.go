package model

import (
	"fmt"
	"strings"
)

// Triplet is one extracted subject-relation-object fact. The ledger JSON
// carries exactly the five tagged fields; ChunkID is populated at creation
// time (or re-derived on load) so the writer never has to parse it back out
// of the id string.
type Triplet struct {
	Subject   string `json:"subject"`
	Relation  string `json:"relation"`
	Object    string `json:"object"`
	Source    string `json:"source"`
	TripletID string `json:"triplet_id"`

	ChunkID string `json:"-"`
}

// NewTripletID builds "<chunk_id>_<local_index>_<global_count>". The global
// count is the 1-based running ledger length, which makes ids unique within a
// run as long as writes are serialized.
func NewTripletID(chunkID string, localIndex, globalCount int) string {
	return fmt.Sprintf("%s_%d_%d", chunkID, localIndex, globalCount)
}

// ChunkIDFromTripletID recovers the owning chunk id: the first two
// "_"-delimited segments of the triplet id.
func ChunkIDFromTripletID(tripletID string) (string, error) {
	parts := strings.Split(tripletID, "_")
	if len(parts) < 4 {
		return "", fmt.Errorf("malformed triplet id %q", tripletID)
	}
	return strings.Join(parts[:2], "_"), nil
}

// ChunkSequenceFromTripletID returns the sequence number of the chunk the
// triplet was extracted from.
func ChunkSequenceFromTripletID(tripletID string) (int, error) {
	chunkID, err := ChunkIDFromTripletID(tripletID)
	if err != nil {
		return 0, err
	}
	return ChunkSequence(chunkID)
}

// ResolveChunkID fills ChunkID from the triplet id when a ledger written by
// another tool is loaded.
func (t *Triplet) ResolveChunkID() error {
	if t.ChunkID != "" {
		return nil
	}
	chunkID, err := ChunkIDFromTripletID(t.TripletID)
	if err != nil {
		return err
	}
	t.ChunkID = chunkID
	return nil
}
