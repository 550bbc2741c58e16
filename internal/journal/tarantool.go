package journal

import (
	"context"
	"fmt"
	"time"

	tarantool "github.com/tarantool/go-tarantool/v2"

	"github.com/goriiin/go-notes/internal/errs"
)

const primaryIndex = "primary"

type TarantoolOptions struct {
	Addr     string
	User     string
	Password string
	Space    string
	Timeout  time.Duration
}

// Tarantool stores entries as tuples in a space whose primary index is the
// string id in field 1.
type Tarantool struct {
	conn  *tarantool.Connection
	space string
}

func NewTarantool(ctx context.Context, o TarantoolOptions) (*Tarantool, error) {
	dialer := tarantool.NetDialer{
		Address:  o.Addr,
		User:     o.User,
		Password: o.Password,
	}
	opts := tarantool.Opts{Timeout: o.Timeout}

	conn, err := tarantool.Connect(ctx, dialer, opts)
	if err != nil {
		return nil, fmt.Errorf("connect tarantool %s: %w", o.Addr, err)
	}
	return &Tarantool{conn: conn, space: o.Space}, nil
}

func (t *Tarantool) Record(ctx context.Context, e Entry) error {
	_, err := t.conn.Do(
		tarantool.NewInsertRequest(t.space).Tuple(e).Context(ctx),
	).Get()
	if err != nil {
		return fmt.Errorf("insert %s: %w", e.ID, err)
	}
	return nil
}

func (t *Tarantool) Get(ctx context.Context, id string) (Entry, error) {
	var rows []Entry
	err := t.conn.Do(
		tarantool.NewSelectRequest(t.space).
			Index(primaryIndex).
			Iterator(tarantool.IterEq).
			Key([]interface{}{id}).
			Limit(1).
			Context(ctx),
	).GetTyped(&rows)
	if err != nil {
		return Entry{}, fmt.Errorf("select %s: %w", id, err)
	}
	if len(rows) == 0 {
		return Entry{}, fmt.Errorf("%w: %s", errs.EntryNotFound, id)
	}
	return rows[0], nil
}

// List walks the primary index, so entries come back in id order rather
// than arrival order; callers sort by ReceivedAt when it matters.
func (t *Tarantool) List(ctx context.Context, limit uint32) ([]Entry, error) {
	var rows []Entry
	err := t.conn.Do(
		tarantool.NewSelectRequest(t.space).
			Index(primaryIndex).
			Iterator(tarantool.IterAll).
			Limit(limit).
			Context(ctx),
	).GetTyped(&rows)
	if err != nil {
		return nil, fmt.Errorf("select all: %w", err)
	}
	return rows, nil
}

func (t *Tarantool) Close() error {
	return t.conn.Close()
}
