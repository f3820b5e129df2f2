package core

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
	Handler  func(query string, params map[string]interface{}) (neo4j.EagerResult, error)
	Err      error
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

type MockLLM struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	Calls         int
	// LastHadDeadline records whether the most recent call's context carried
	// a deadline.
	LastHadDeadline bool
	Err             error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	_, m.LastHadDeadline = ctx.Deadline()
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}
