package journal

import (
	"context"
	"fmt"
)

const (
	BackendNone      = "none"
	BackendMemory    = "memory"
	BackendTarantool = "tarantool"
)

// Entry is one handled request. Field order matches the tuple layout of the
// Tarantool space.
type Entry struct {
	_msgpack struct{} `msgpack:",as_array"`

	ID         string `msgpack:"id" json:"id"`
	RemoteAddr string `msgpack:"remote_addr" json:"remote_addr"`
	Method     string `msgpack:"method" json:"method"`
	Path       string `msgpack:"path" json:"path"`
	Status     int    `msgpack:"status" json:"status"`
	RawRequest string `msgpack:"raw_request" json:"raw_request"`
	ReceivedAt uint64 `msgpack:"received_at" json:"received_at"`
}

type Journal interface {
	Record(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (Entry, error)
	// List returns at most limit entries. Ordering is up to the backend.
	List(ctx context.Context, limit uint32) ([]Entry, error)
	Close() error
}

// Open builds the configured backend. The "none" backend yields a nil
// Journal, which callers treat as disabled.
func Open(ctx context.Context, backend string, capacity int, t TarantoolOptions) (Journal, error) {
	switch backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(capacity), nil
	case BackendTarantool:
		tt, err := NewTarantool(ctx, t)
		if err != nil {
			return nil, err
		}
		return tt, nil
	default:
		return nil, fmt.Errorf("unknown journal backend %q", backend)
	}
}
