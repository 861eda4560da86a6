// Package metadata persists small key/value pairs of client state (the bearer
// credential above all) in the local sqlite database.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get reports ok=false for missing
// keys instead of failing; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
