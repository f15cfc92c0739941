package testutil

import (
	"context"
	"sync"

	"jethabot/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	CompleteFunc func(ctx context.Context, req model.CompletionRequest) (string, error)

	mu           sync.Mutex
	requests     []model.CompletionRequest
	currentModel string
}

// NewMockProvider creates a mock provider that answers every request with Reply("Mock response")
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.CompleteFunc = mock.defaultComplete
	return mock
}

func (m *MockProvider) defaultComplete(ctx context.Context, req model.CompletionRequest) (string, error) {
	if !req.JSONObject {
		return "Hi", nil
	}
	return Reply("reply", "Mock response"), nil
}

func (m *MockProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.CompleteFunc(ctx, req)
}

// Requests returns every request received so far
func (m *MockProvider) Requests() []model.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.CompletionRequest(nil), m.requests...)
}

// Calls returns the number of Complete calls
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

// Connector returns a model.Connector that hands out m for every key in
// valid and an authentication error for any other key. With no keys
// listed every key is accepted.
func (m *MockProvider) Connector(valid ...string) model.Connector {
	return func(apiKey string) (model.Provider, error) {
		if len(valid) == 0 {
			return m, nil
		}
		for _, k := range valid {
			if k == apiKey {
				return m, nil
			}
		}
		return &rejectingProvider{MockProvider: m}, nil
	}
}

// rejectingProvider fails every request the way a provider rejects a bad key
type rejectingProvider struct {
	*MockProvider
}

func (r *rejectingProvider) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	return "", InvalidKeyError()
}
