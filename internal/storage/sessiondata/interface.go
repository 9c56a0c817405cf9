// Package sessiondata persists the client's durable session state as a small
// key/value table. It stores exactly two keys: "token" (the bearer token) and
// "user" (the JSON-encoded profile).
package sessiondata

import "context"

// Keys used by the session store.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
