package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ibreez3/minivault/config"
	"github.com/ibreez3/minivault/responder"
)

// Handler validates prompts, picks a responder and records every
// interaction that reaches it.
type Handler struct {
	cfg    config.Config
	stub   responder.Responder
	remote responder.Responder
	sink   Sink
	log    *slog.Logger
}

// NewHandler wires a handler. remote may be nil when cfg disables the
// backend.
func NewHandler(cfg config.Config, remote responder.Responder, sink Sink) *Handler {
	return &Handler{cfg: cfg, stub: responder.Stub{}, remote: remote, sink: sink, log: slog.Default()}
}

func (h *Handler) WithLogger(l *slog.Logger) *Handler {
	h.log = l
	return h
}

func (h *Handler) Config() config.Config { return h.cfg }

type loggerKey struct{}

// ContextWithLogger attaches a request-scoped logger used for backend
// warnings raised while serving that request.
func ContextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func (h *Handler) logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return h.log
}

func (h *Handler) pick() responder.Responder {
	if h.cfg.Ollama.Enabled && h.remote != nil {
		return h.remote
	}
	return h.stub
}

// Generate returns the full response. The only error is a failed log write.
func (h *Handler) Generate(ctx context.Context, prompt string) (responder.Result, error) {
	if prompt == "" {
		return responder.Result{Text: responder.EmptyPromptText, Kind: responder.Rejected}, nil
	}
	res := h.pick().Generate(context.WithoutCancel(ctx), prompt)
	if res.Kind == responder.SoftError {
		h.logger(ctx).Warn("backend error", "backend", h.cfg.Backend(), "response", res.Text)
	}
	if err := h.sink.Log(prompt, res.Text); err != nil {
		return responder.Result{}, err
	}
	return res, nil
}

// GenerateStream returns a stream that logs the accumulated text once the
// underlying responder completes. A failed log write comes back from the
// final Recv in place of io.EOF.
func (h *Handler) GenerateStream(ctx context.Context, prompt string) responder.Stream {
	if prompt == "" {
		return responder.FromFragments(responder.Fragment{Text: responder.EmptyPromptText, Kind: responder.Rejected})
	}
	return &loggedStream{
		inner:  h.pick().Stream(context.WithoutCancel(ctx), prompt),
		prompt: prompt,
		h:      h,
		log:    h.logger(ctx),
	}
}

type loggedStream struct {
	inner  responder.Stream
	prompt string
	h      *Handler
	log    *slog.Logger
	buf    strings.Builder
	soft   bool
	logged bool
}

func (s *loggedStream) Recv() (responder.Fragment, error) {
	if s.logged {
		return responder.Fragment{}, io.EOF
	}
	f, err := s.inner.Recv()
	if err == nil {
		s.buf.WriteString(f.Text)
		if f.Kind == responder.SoftError {
			s.soft = true
		}
		return f, nil
	}
	if err != io.EOF {
		return f, err
	}
	s.logged = true
	if s.soft {
		s.log.Warn("backend stream error", "backend", s.h.cfg.Backend(), "response", s.buf.String())
	}
	if lerr := s.h.sink.Log(s.prompt, s.buf.String()); lerr != nil {
		return responder.Fragment{}, lerr
	}
	return responder.Fragment{}, io.EOF
}

// Close releases the backend stream. An unfinished stream is not logged.
func (s *loggedStream) Close() error {
	return s.inner.Close()
}
