package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The relation text lives in the edge property `type`, not in the Cypher
// relationship type token (which is the constant RELATION for every fact
// edge). The write and read sides must agree on that property or expansion
// returns "RELATION" for every neighbor.
func TestRelationTextRoundTripsThroughEdgeProperty(t *testing.T) {
	assert.Contains(t, UpsertTripletQuery, "type: $relation")

	assert.Contains(t, ExpandEntityQuery, "coalesce(r.type, type(r)) AS relation")
	assert.NotContains(t, ExpandEntityQuery, " type(r) AS relation")
}

func TestUpsertQueriesMergeAndReturn(t *testing.T) {
	for name, q := range map[string]string{
		"file":    UpsertFileQuery,
		"chunk":   UpsertChunkQuery,
		"triplet": UpsertTripletQuery,
	} {
		assert.Contains(t, q, "MERGE", name)
		assert.NotContains(t, q, "CREATE ", name)
		assert.Contains(t, q, "RETURN", name)
	}
}
