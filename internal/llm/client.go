package llm

import (
	"context"
)

// Client is the text-generation interface the pipeline depends on. The call
// is treated as opaque: callers supply a context with a deadline and get back
// raw model text.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
