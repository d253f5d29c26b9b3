package client

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockClient is a mock implementation of the Client interface for testing
type MockClient struct {
	// Control behavior
	ShouldFail  bool   // Whether invocations should fail
	FailMessage string // Custom failure message

	// Responses maps a model ID to the body returned for it
	Responses map[string][]byte

	// Track calls for assertions
	InvokeCalls []InvokeCall

	mu sync.Mutex
}

// InvokeCall records a call to InvokeModel
type InvokeCall struct {
	ModelID   string
	Body      []byte
	Timestamp time.Time
}

// NewMockClient creates a new mock client
func NewMockClient() *MockClient {
	return &MockClient{
		Responses:   make(map[string][]byte),
		InvokeCalls: []InvokeCall{},
	}
}

// InvokeModel records the call and returns the scripted response for the model
func (m *MockClient) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Record the call
	m.InvokeCalls = append(m.InvokeCalls, InvokeCall{
		ModelID:   modelID,
		Body:      append([]byte(nil), body...),
		Timestamp: time.Now(),
	})

	if m.ShouldFail {
		if m.FailMessage != "" {
			return nil, fmt.Errorf("%s", m.FailMessage)
		}
		return nil, fmt.Errorf("mock client configured to fail")
	}

	resp, ok := m.Responses[modelID]
	if !ok {
		return nil, fmt.Errorf("no mock response for model: %s", modelID)
	}
	return resp, nil
}

// Helper methods for testing

// SetResponse sets the body returned for a model
func (m *MockClient) SetResponse(modelID string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[modelID] = body
}

// SetFailure makes every following invocation fail with the message
func (m *MockClient) SetFailure(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldFail = true
	m.FailMessage = message
}

// Calls returns a copy of the recorded invocations
func (m *MockClient) Calls() []InvokeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]InvokeCall(nil), m.InvokeCalls...)
}

// Reset clears all state for a fresh test
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Responses = make(map[string][]byte)
	m.InvokeCalls = []InvokeCall{}
	m.ShouldFail = false
	m.FailMessage = ""
}
