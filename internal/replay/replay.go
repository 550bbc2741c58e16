package replay

import (
	"context"
	"fmt"
	"strings"

	"github.com/goriiin/go-notes/internal/domain"
	"github.com/goriiin/go-notes/internal/journal"
	"github.com/goriiin/go-notes/internal/protocol"
)

type Dispatcher interface {
	Dispatch(req *domain.Request) *domain.Response
}

// Replayer feeds journaled raw requests back through the dispatcher as if
// they had just arrived on a connection.
type Replayer struct {
	j journal.Journal
	d Dispatcher
}

func New(j journal.Journal, d Dispatcher) *Replayer {
	return &Replayer{j: j, d: d}
}

func (r *Replayer) Repeat(ctx context.Context, id string) (*domain.Response, error) {
	e, err := r.j.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req, err := parseRaw(e.RawRequest)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", id, err)
	}
	return r.d.Dispatch(req), nil
}

func parseRaw(raw string) (*domain.Request, error) {
	return protocol.NewReader(strings.NewReader(raw)).ReadRequest()
}
