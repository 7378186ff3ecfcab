package responder

import (
	"context"
	"sync"

	"github.com/ibreez3/minivault/openai"
)

// MockClient is a scripted ChatClient. Reply and Err drive Chat; Chunks and
// StreamErr drive ChatStream (StreamErr is reported after all chunks).
type MockClient struct {
	Reply     string
	Err       error
	Chunks    []string
	StreamErr error

	mu      sync.Mutex
	Prompts []string
}

func (m *MockClient) record(prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
}

func (m *MockClient) Chat(_ context.Context, _ string, user string) (string, error) {
	m.record(user)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

func (m *MockClient) ChatStream(_ context.Context, _ string, user string) openai.Chunks {
	m.record(user)
	return &mockChunks{chunks: m.Chunks, err: m.StreamErr, pos: -1}
}

type mockChunks struct {
	chunks []string
	err    error
	pos    int
	closed bool
}

func (c *mockChunks) Next() bool {
	if c.closed || c.pos+1 >= len(c.chunks) {
		return false
	}
	c.pos++
	return true
}

func (c *mockChunks) Current() string { return c.chunks[c.pos] }

func (c *mockChunks) Err() error { return c.err }

func (c *mockChunks) Close() error {
	c.closed = true
	return nil
}
