package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"eisenq/internal/core/ports"
)

// TxManager runs units of work against MongoDB. Standalone servers have no
// multi-document transactions, so by default the steps run sequentially and
// a failure between them is not rolled back. On a replica set, enable
// transactions to make cascades atomic.
type TxManager struct {
	client       *mongo.Client
	transactions bool
}

var _ ports.TxManager = (*TxManager)(nil)

func NewTxManager(store *Store, transactions bool) *TxManager {
	return &TxManager{client: store.client, transactions: transactions}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.transactions || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
