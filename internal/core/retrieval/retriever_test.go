package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchKeys = []string{"entity", "score"}
var expandKeys = []string{"source", "relation", "target", "provenance"}
var chunkKeys = []string{"chunk_id", "text", "source"}

func TestSearchEntitiesRanked(t *testing.T) {
	mock := &MockDriver{
		SearchHits: []*neo4j.Record{
			record(searchKeys, []interface{}{"Central apnea index", 2.5}),
			record(searchKeys, []interface{}{"Obstructive apnea", 1.2}),
		},
	}
	r := NewRetriever(mock, 0, 0, 0)

	hits, err := r.SearchEntities(context.Background(), "apnea", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Central apnea index", hits[0].Entity)
	assert.Equal(t, 2.5, hits[0].Score)
	assert.Equal(t, "Obstructive apnea", hits[1].Entity)
}

func TestSearchEntitiesBlankQuestionSkipsStore(t *testing.T) {
	mock := &MockDriver{}
	r := NewRetriever(mock, 0, 0, 0)

	hits, err := r.SearchEntities(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Empty(t, mock.Executed)
}

func TestSearchEntitiesEscapesQuerySyntax(t *testing.T) {
	mock := &MockDriver{}
	r := NewRetriever(mock, 0, 0, 0)

	_, err := r.SearchEntities(context.Background(), `what is e-LFC / the "threshold"?`, 10)
	require.NoError(t, err)

	require.Len(t, mock.Executed, 1)
	q, _ := mock.Executed[0]["q"].(string)
	assert.Equal(t, `what is e\-LFC \/ the \"threshold\"\?`, q)
}

func TestSearchEntitiesEmptyIsNotAnError(t *testing.T) {
	mock := &MockDriver{}
	r := NewRetriever(mock, 0, 0, 0)

	hits, err := r.SearchEntities(context.Background(), "no such thing", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestExpandKeepsUnresolvableTargets(t *testing.T) {
	mock := &MockDriver{
		Neighbors: map[string][]*neo4j.Record{
			"A": {
				record(expandKeys, []interface{}{"A", "RELATION", "B", "manual.pdf"}),
				record(expandKeys, []interface{}{"A", "CONTAINS_ENTITY", nil, nil}),
			},
		},
	}
	r := NewRetriever(mock, 0, 0, 0)

	neighbors, err := r.Expand(context.Background(), "A", 20)
	require.NoError(t, err)
	require.Len(t, neighbors, 2)
	assert.Equal(t, "B", neighbors[0].Target)
	// The store layer does not filter nameless peers.
	assert.Equal(t, "", neighbors[1].Target)
}

func TestRetrieveScenarioB(t *testing.T) {
	mock := &MockDriver{
		SearchHits: []*neo4j.Record{
			record(searchKeys, []interface{}{"Central apnea index", 3.1}),
		},
		Neighbors: map[string][]*neo4j.Record{
			"Central apnea index": {
				record(expandKeys, []interface{}{"Central apnea index", "is measured by", "5 per hour", "memea2021.pdf"}),
			},
		},
		Chunks: map[string][]*neo4j.Record{
			"Central apnea index": {
				record(chunkKeys, []interface{}{"chunk_3", "The central apnea index threshold is 5 events per hour.", "memea2021.pdf"}),
			},
		},
	}
	r := NewRetriever(mock, 0, 0, 0)

	bundles, err := r.Retrieve(context.Background(), "apnea index threshold", 1)
	require.NoError(t, err)
	require.Len(t, bundles, 1)

	b := bundles[0]
	assert.Equal(t, "Central apnea index", b.Entity)
	require.Len(t, b.Neighbors, 1)
	assert.Equal(t, "Central apnea index", b.Neighbors[0].Source)
	assert.Equal(t, "is measured by", b.Neighbors[0].Relation)
	assert.Equal(t, "5 per hour", b.Neighbors[0].Target)
	require.Len(t, b.Chunks, 1)
	assert.Equal(t, "chunk_3", b.Chunks[0].ChunkID)
	assert.Contains(t, b.Chunks[0].Text, "5 events per hour")
}

func TestRetrievePreservesRankOrder(t *testing.T) {
	mock := &MockDriver{
		SearchHits: []*neo4j.Record{
			record(searchKeys, []interface{}{"First", 3.0}),
			record(searchKeys, []interface{}{"Second", 2.0}),
			record(searchKeys, []interface{}{"Third", 1.0}),
		},
	}
	r := NewRetriever(mock, 0, 0, 0)

	for run := 0; run < 5; run++ {
		bundles, err := r.Retrieve(context.Background(), "q", 3)
		require.NoError(t, err)
		require.Len(t, bundles, 3)
		assert.Equal(t, "First", bundles[0].Entity)
		assert.Equal(t, "Second", bundles[1].Entity)
		assert.Equal(t, "Third", bundles[2].Entity)
	}
}

func TestRetrievePassesConfiguredLimits(t *testing.T) {
	mock := &MockDriver{
		SearchHits: []*neo4j.Record{
			record(searchKeys, []interface{}{"A", 1.0}),
		},
	}
	r := NewRetriever(mock, 7, 3, 0)

	_, err := r.Retrieve(context.Background(), "q", 1)
	require.NoError(t, err)

	var sawNeighborLimit, sawChunkLimit bool
	for _, params := range mock.Executed {
		if params["entity"] == "A" {
			switch params["limit"] {
			case 7:
				sawNeighborLimit = true
			case 3:
				sawChunkLimit = true
			}
		}
	}
	assert.True(t, sawNeighborLimit)
	assert.True(t, sawChunkLimit)
}

func TestRetrieveDefaultLimits(t *testing.T) {
	r := NewRetriever(&MockDriver{}, 0, 0, 0)
	assert.Equal(t, DefaultNeighborLimit, r.NeighborLimit)
	assert.Equal(t, DefaultChunkLimit, r.ChunkLimit)
}

func TestRetrieveEmptyEvidenceIsValid(t *testing.T) {
	mock := &MockDriver{
		SearchHits: []*neo4j.Record{
			record(searchKeys, []interface{}{"Lonely entity", 1.0}),
		},
	}
	r := NewRetriever(mock, 0, 0, 0)

	bundles, err := r.Retrieve(context.Background(), "q", 1)
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.NotNil(t, bundles[0].Neighbors)
	assert.Empty(t, bundles[0].Neighbors)
	assert.NotNil(t, bundles[0].Chunks)
	assert.Empty(t, bundles[0].Chunks)
}

func TestRetrieveSearchFailurePropagates(t *testing.T) {
	mock := &MockDriver{Err: errors.New("store unreachable")}
	r := NewRetriever(mock, 0, 0, 0)

	_, err := r.Retrieve(context.Background(), "q", 3)
	require.Error(t, err)
}
