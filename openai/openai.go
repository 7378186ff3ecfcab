package openai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v3" // imported as openai
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/ssestream"
)

var ErrNoChoices = errors.New("completion returned no choices")

type Client struct {
	cli openai.Client
}

// NewClient talks to any OpenAI-compatible endpoint. The SDK's own retries
// are turned off; a failed call surfaces immediately.
func NewClient(apiKey string, baseURL string) *Client {
	openAICli := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &Client{
		cli: openAICli,
	}
}

func userParams(model, user string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(user),
		},
	}
}

// Chat sends a single user message and returns the reply with surrounding
// whitespace trimmed.
func (c *Client) Chat(ctx context.Context, model string, user string) (string, error) {
	res, err := c.cli.Chat.Completions.New(ctx, userParams(model, user))
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", ErrNoChoices
	}
	return strings.TrimSpace(res.Choices[0].Message.Content), nil
}

// ChatStream opens a streaming completion. Connection errors are reported
// through Err once Next returns false.
func (c *Client) ChatStream(ctx context.Context, model string, user string) Chunks {
	return &chunkStream{s: c.cli.Chat.Completions.NewStreaming(ctx, userParams(model, user))}
}

// Chunks is a pull iterator over streamed text deltas.
type Chunks interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}

type chunkStream struct {
	s *ssestream.Stream[openai.ChatCompletionChunk]
}

func (cs *chunkStream) Next() bool { return cs.s.Next() }

// Current is empty for chunks that carry no content (role headers, the
// final finish_reason chunk).
func (cs *chunkStream) Current() string {
	chunk := cs.s.Current()
	if len(chunk.Choices) == 0 {
		return ""
	}
	return chunk.Choices[0].Delta.Content
}

func (cs *chunkStream) Err() error { return cs.s.Err() }

func (cs *chunkStream) Close() error { return cs.s.Close() }
