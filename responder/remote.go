package responder

import (
	"context"
	"io"

	"github.com/ibreez3/minivault/openai"
)

// ChatClient is the part of openai.Client the remote responder needs.
type ChatClient interface {
	Chat(ctx context.Context, model string, user string) (string, error)
	ChatStream(ctx context.Context, model string, user string) openai.Chunks
}

// Remote forwards prompts to an OpenAI-compatible backend.
type Remote struct {
	Client ChatClient
	Model  string
}

func NewRemote(cli ChatClient, model string) *Remote {
	return &Remote{Client: cli, Model: model}
}

func (r *Remote) Generate(ctx context.Context, prompt string) Result {
	text, err := r.Client.Chat(ctx, r.Model, prompt)
	if err != nil {
		return Result{Text: SDKErrorPrefix + " " + err.Error(), Kind: SoftError}
	}
	return Result{Text: text}
}

func (r *Remote) Stream(ctx context.Context, prompt string) Stream {
	return &remoteStream{chunks: r.Client.ChatStream(ctx, r.Model, prompt)}
}

type remoteStream struct {
	chunks openai.Chunks
	done   bool
}

func (s *remoteStream) Recv() (Fragment, error) {
	if s.done {
		return Fragment{}, io.EOF
	}
	for s.chunks.Next() {
		if t := s.chunks.Current(); t != "" {
			return Fragment{Text: t}, nil
		}
	}
	s.done = true
	err := s.chunks.Err()
	_ = s.chunks.Close()
	if err != nil {
		return Fragment{Text: StreamErrorPrefix + " " + err.Error(), Kind: SoftError}, nil
	}
	return Fragment{}, io.EOF
}

func (s *remoteStream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.chunks.Close()
}
