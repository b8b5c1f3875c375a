package core

import "context"

type ChatProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Pinger is implemented by providers that can report reachability
// without doing real work.
type Pinger interface {
	Ping(ctx context.Context) error
}
