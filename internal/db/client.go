package db

import "context"

// Client is the transaction boundary the services run inside. Every bulk
// operation executes within one ambient transaction supplied by the host
// persistence layer; nested calls reuse the transaction already present
// on the context.
type Client interface {
	// WithTx executes fn within a transaction. If the context already
	// carries one, fn runs inside it.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
