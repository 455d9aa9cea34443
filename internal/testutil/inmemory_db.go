package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/db"
	"github.com/ledgerline/ledgerline/internal/logger"
	"github.com/ledgerline/ledgerline/internal/types"
)

// InMemoryDBClient implements db.Client for tests. There is no real
// transaction to run; it only marks the context so nested WithTx calls
// behave like the production client and reuse the outer scope.
type InMemoryDBClient struct {
	logger *logger.Logger
}

func NewInMemoryDBClient(logger *logger.Logger) db.Client {
	return &InMemoryDBClient{logger: logger}
}

func (c *InMemoryDBClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(types.CtxDBTransaction) != nil {
		return fn(ctx)
	}
	txCtx := context.WithValue(ctx, types.CtxDBTransaction, struct{}{})
	return fn(txCtx)
}
