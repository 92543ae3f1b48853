package port

import "context"

// GenerateInput carries one prompt plus zero-or-one inline file attachment.
type GenerateInput struct {
	Prompt      string
	FileBytes   []byte
	ContentType string
}

// Generator abstracts the generative LLM call. Implementations return the
// model's raw text; no structure is guaranteed. Fallible and latency-bearing
// (seconds to tens of seconds), so every call takes a context.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}
