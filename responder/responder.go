// Package responder turns a prompt into response text, either whole or as a
// stream of fragments. Backend failures never escape as errors; they become
// SoftError content so callers always have something printable.
package responder

import (
	"context"
	"io"
	"strings"
)

const (
	EchoPrefix        = "Echo: "
	SDKErrorPrefix    = "[Ollama SDK Error]"
	StreamErrorPrefix = "[Stream Error]"
	EmptyPromptText   = "Error: Prompt cannot be empty."
)

type Kind int

const (
	Ok Kind = iota
	SoftError
	Rejected
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case SoftError:
		return "soft_error"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

type Result struct {
	Text string
	Kind Kind
}

type Fragment struct {
	Text string
	Kind Kind
}

// Stream is a finite, single-consumer sequence of fragments. Recv returns
// io.EOF once the sequence is complete and keeps returning it afterwards.
type Stream interface {
	Recv() (Fragment, error)
	Close() error
}

type Responder interface {
	Generate(ctx context.Context, prompt string) Result
	Stream(ctx context.Context, prompt string) Stream
}

// Drain reads s to completion and returns the concatenated text.
func Drain(s Stream) (string, error) {
	defer s.Close()
	var sb strings.Builder
	for {
		f, err := s.Recv()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(f.Text)
	}
}

type sliceStream struct {
	frags []Fragment
}

// FromFragments returns a Stream that yields frags in order.
func FromFragments(frags ...Fragment) Stream {
	return &sliceStream{frags: frags}
}

func (s *sliceStream) Recv() (Fragment, error) {
	if len(s.frags) == 0 {
		return Fragment{}, io.EOF
	}
	f := s.frags[0]
	s.frags = s.frags[1:]
	return f, nil
}

func (s *sliceStream) Close() error {
	s.frags = nil
	return nil
}
