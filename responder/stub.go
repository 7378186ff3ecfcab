package responder

import "context"

// Stub echoes the prompt back.
type Stub struct{}

func (Stub) Generate(_ context.Context, prompt string) Result {
	return Result{Text: EchoPrefix + prompt}
}

// Stream yields the echo as a single fragment.
func (s Stub) Stream(ctx context.Context, prompt string) Stream {
	r := s.Generate(ctx, prompt)
	return FromFragments(Fragment{Text: r.Text, Kind: r.Kind})
}
