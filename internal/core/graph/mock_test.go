package graph

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

type MockDriver struct {
	mu       sync.Mutex
	Executed []executedQuery
	// Handler, when set, produces the result per call; otherwise every query
	// returns a single record (the merge succeeded).
	Handler func(query string, params map[string]interface{}) (neo4j.EagerResult, error)
	Err     error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	m.mu.Unlock()

	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if m.Handler != nil {
		return m.Handler(query, params)
	}
	return neo4j.EagerResult{
		Records: []*neo4j.Record{{Keys: []string{"ok"}, Values: []interface{}{true}}},
	}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}
