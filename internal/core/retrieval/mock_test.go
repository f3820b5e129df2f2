package retrieval

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/htic/graphrag/internal/driver"
)

func record(keys []string, values []interface{}) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

// MockDriver serves scripted search/expand/chunk results. It must be
// concurrency-safe because Retrieve fans out per entity.
type MockDriver struct {
	mu       sync.Mutex
	Executed []map[string]interface{}

	SearchHits []*neo4j.Record
	Neighbors  map[string][]*neo4j.Record
	Chunks     map[string][]*neo4j.Record
	Err        error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	m.Executed = append(m.Executed, params)
	m.mu.Unlock()

	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}

	switch query {
	case driver.SearchEntitiesQuery:
		return neo4j.EagerResult{Records: m.SearchHits}, nil
	case driver.ExpandEntityQuery:
		entity, _ := params["entity"].(string)
		return neo4j.EagerResult{Records: m.Neighbors[entity]}, nil
	case driver.ChunksForEntityQuery:
		entity, _ := params["entity"].(string)
		return neo4j.EagerResult{Records: m.Chunks[entity]}, nil
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}
