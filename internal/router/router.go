package router

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goriiin/go-notes/internal/domain"
)

const (
	prefixNotes = "/notes"
	prefixList  = "/list"
)

type NoteStore interface {
	Read(rel string) ([]byte, error)
	Write(rel string, data []byte) error
	List() ([]string, error)
}

type Renderer interface {
	Render(src []byte) ([]byte, error)
}

// Dispatcher turns a parsed request into exactly one response. It holds no
// state of its own; results depend only on the request and the store.
type Dispatcher struct {
	notes  NoteStore
	render Renderer
	log    zerolog.Logger
}

func New(notes NoteStore, render Renderer, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{notes: notes, render: render, log: log}
}

func (d *Dispatcher) Dispatch(req *domain.Request) *domain.Response {
	path, query, hasQuery := req.SplitQuery()

	switch {
	case matchPrefix(path, prefixNotes):
		rel := strings.TrimPrefix(path, prefixNotes)
		rel = strings.TrimPrefix(rel, "/")

		switch req.Method {
		case domain.MethodGet:
			return d.readNote(rel)
		case domain.MethodPost:
			return d.writeNote(req.Path, rel, req.Body)
		default:
			return domain.NotFound()
		}

	case matchPrefix(path, prefixList):
		if req.Method != domain.MethodGet || path != prefixList {
			return domain.NotFound()
		}
		return d.listNotes(query, hasQuery)

	default:
		return domain.NotFound()
	}
}

// matchPrefix reports whether path is prefix itself or continues with a
// new segment below it.
func matchPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}

func (d *Dispatcher) readNote(rel string) *domain.Response {
	src, err := d.notes.Read(rel)
	if err != nil {
		d.log.Debug().Err(err).Str("note", rel).Msg("note not readable")
		return domain.NotFound()
	}

	out, err := d.render.Render(src)
	if err != nil {
		d.log.Warn().Err(err).Str("note", rel).Msg("render failed")
		return domain.NotFound()
	}
	return domain.HTML(out)
}

func (d *Dispatcher) writeNote(target, rel string, body []byte) *domain.Response {
	if strings.Contains(target, "..") {
		return domain.BadRequest(msgTraversal)
	}

	if err := d.notes.Write(rel, body); err != nil {
		d.log.Warn().Err(err).Str("note", rel).Msg("save failed")
		return domain.BadRequest(msgSaveFailed)
	}

	d.log.Info().Str("note", rel).Int("bytes", len(body)).Msg("note saved")
	return d.readNote(rel)
}

func (d *Dispatcher) listNotes(query string, hasQuery bool) *domain.Response {
	start, end, msg := parseRange(query, hasQuery)
	if msg != "" {
		return domain.BadRequest(msg)
	}

	names, err := d.notes.List()
	if err != nil {
		d.log.Warn().Err(err).Msg("list failed")
		return domain.BadRequest(msgListFailed)
	}

	page := make([]string, 0, int(end-start))
	for i := int(start); i < int(end) && i < len(names); i++ {
		page = append(page, names[i])
	}

	body, err := json.Marshal(page)
	if err != nil {
		return domain.BadRequest(msgListFailed)
	}
	return domain.JSON(body)
}
