package unibox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing. Safe for
// concurrent use.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	mu sync.Mutex

	// Calls counts CreateLabel invocations, including failed ones.
	Calls int

	OnCreateLabel func(ctx context.Context, req *LabelRequest) ([]byte, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// CreateLabel returns a mock response echoing the request fields plus a
// generated tracking number, mirroring the Unibox server's behavior.
func (m *MockAPIClient) CreateLabel(ctx context.Context, req *LabelRequest) ([]byte, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Description: "Simulated transport error"}
	}

	if m.OnCreateLabel != nil {
		return m.OnCreateLabel(ctx, req)
	}

	tracking := fmt.Sprintf("%011d", time.Now().UnixNano()%100000000000)
	fields := append(req.Fields(),
		Field{KeyTrackingNumber, tracking},
		Field{"T8950", "mock-" + uuid.New().String()[:8]},
	)
	return encodeFields(fields), nil
}

var _ APIClient = (*MockAPIClient)(nil)

// APIError represents an error reported by the Unibox server or transport.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Description
}
