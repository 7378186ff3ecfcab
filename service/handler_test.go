package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/ibreez3/minivault/config"
	"github.com/ibreez3/minivault/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ calls int }

func (f *failingSink) Log(string, string) error {
	f.calls++
	return errors.New("disk full")
}

func newTestHandler(t *testing.T, enabled bool, mock *responder.MockClient) (*Handler, string) {
	t.Helper()

	var cfg config.Config
	cfg.Ollama.Enabled = enabled
	cfg.Ollama.Model = "llama3"

	path := filepath.Join(t.TempDir(), "logs", "log.jsonl")
	var remote responder.Responder
	if mock != nil {
		remote = responder.NewRemote(mock, cfg.Ollama.Model)
	}
	return NewHandler(cfg, remote, NewInteractionLog(path)), path
}

func TestHandler_GenerateStub(t *testing.T) {
	h, path := newTestHandler(t, false, nil)

	res, err := h.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, responder.Result{Text: "Echo: hello"}, res)

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0]["prompt"])
	assert.Equal(t, "Echo: hello", entries[0]["response"])
}

func TestHandler_EmptyPromptNotLogged(t *testing.T) {
	h, path := newTestHandler(t, false, nil)

	res, err := h.Generate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Error: Prompt cannot be empty.", res.Text)
	assert.Equal(t, responder.Rejected, res.Kind)

	text, err := responder.Drain(h.GenerateStream(context.Background(), ""))
	require.NoError(t, err)
	assert.Equal(t, "Error: Prompt cannot be empty.", text)

	assert.Empty(t, readEntries(t, path))
}

func TestHandler_WhitespacePromptIsNotEmpty(t *testing.T) {
	h, path := newTestHandler(t, false, nil)

	res, err := h.Generate(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "Echo:   ", res.Text)
	assert.Len(t, readEntries(t, path), 1)
}

func TestHandler_RemoteSoftErrorIsLogged(t *testing.T) {
	mock := &responder.MockClient{Err: errors.New("connection refused")}
	h, path := newTestHandler(t, true, mock)

	res, err := h.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, responder.SoftError, res.Kind)
	assert.Equal(t, "[Ollama SDK Error] connection refused", res.Text)

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, res.Text, entries[0]["response"])
}

func TestHandler_DisabledBackendIgnoresRemote(t *testing.T) {
	mock := &responder.MockClient{Reply: "from backend"}
	h, _ := newTestHandler(t, false, mock)

	res, err := h.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Echo: hello", res.Text)
	assert.Empty(t, mock.Prompts)
}

func TestHandler_StreamLogsAfterExhaustion(t *testing.T) {
	mock := &responder.MockClient{Chunks: []string{"Hel", "lo"}}
	h, path := newTestHandler(t, true, mock)

	s := h.GenerateStream(context.Background(), "hello")

	f, err := s.Recv()
	require.NoError(t, err)
	assert.Equal(t, "Hel", f.Text)
	f, err = s.Recv()
	require.NoError(t, err)
	assert.Equal(t, "lo", f.Text)

	// Nothing is written until the stream reports completion.
	assert.Empty(t, readEntries(t, path))

	_, err = s.Recv()
	assert.Equal(t, io.EOF, err)
	_, err = s.Recv()
	assert.Equal(t, io.EOF, err)

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "Hello", entries[0]["response"])
}

func TestHandler_StreamErrorAppendedToLog(t *testing.T) {
	mock := &responder.MockClient{Chunks: []string{"Hel"}, StreamErr: errors.New("reset")}
	h, path := newTestHandler(t, true, mock)

	text, err := responder.Drain(h.GenerateStream(context.Background(), "hello"))
	require.NoError(t, err)
	assert.Equal(t, "Hel[Stream Error] reset", text)

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, text, entries[0]["response"])
}

func TestHandler_StubStreamMatchesBlocking(t *testing.T) {
	h, path := newTestHandler(t, false, nil)

	streamed, err := responder.Drain(h.GenerateStream(context.Background(), "hello"))
	require.NoError(t, err)
	blocking, err := h.Generate(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, blocking.Text, streamed)
	assert.Len(t, readEntries(t, path), 2)
}

func TestHandler_LogFailureSurfaces(t *testing.T) {
	sink := &failingSink{}
	h := NewHandler(config.Config{}, nil, sink)

	_, err := h.Generate(context.Background(), "hello")
	assert.EqualError(t, err, "disk full")

	_, err = responder.Drain(h.GenerateStream(context.Background(), "hello"))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 2, sink.calls)
}

func TestHandler_CanceledContextStillGenerates(t *testing.T) {
	mock := &responder.MockClient{Reply: "done"}
	h, path := newTestHandler(t, true, mock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := h.Generate(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "done", res.Text)
	assert.Len(t, readEntries(t, path), 1)
}
