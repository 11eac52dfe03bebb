package ports

import "context"

// TxManager runs fn as one logical unit of work. Repositories called with
// the context passed to fn join the unit when the store supports it.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Authenticator resolves a bearer credential to an opaque owner id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (userID string, err error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}
