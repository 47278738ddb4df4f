package port

import "context"

// KeyValueStore is the local durable storage boundary: string keys and
// values, with keys namespaced by collection and identity partition.
type KeyValueStore interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenSource yields a bearer token for the active session. An empty token
// with a nil error means there is no session; the remote store is then
// unreachable and callers stay on local state.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
