package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/goriiin/go-notes/internal/domain"
	"github.com/goriiin/go-notes/internal/errs"
	"github.com/goriiin/go-notes/internal/journal"
)

const defaultLimit = 100

type Repeater interface {
	Repeat(ctx context.Context, id string) (*domain.Response, error)
}

type repeatResult struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// NewRouter exposes the journal for inspection and replay.
func NewRouter(j journal.Journal, p Repeater, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/requests", func(w http.ResponseWriter, r *http.Request) {
		limit := uint32(defaultLimit)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				http.Error(w, "limit must be an unsigned integer", http.StatusBadRequest)
				return
			}
			limit = uint32(n)
		}

		list, err := j.List(r.Context(), limit)
		if err != nil {
			log.Warn().Err(err).Msg("journal list failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sort.SliceStable(list, func(a, b int) bool { return list[a].ReceivedAt < list[b].ReceivedAt })
		writeJSON(w, list)
	}).Methods(http.MethodGet)

	r.HandleFunc("/requests/{id}", func(w http.ResponseWriter, r *http.Request) {
		item, err := j.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, item)
	}).Methods(http.MethodGet)

	r.HandleFunc("/repeat/{id}", func(w http.ResponseWriter, r *http.Request) {
		res, err := p.Repeat(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, repeatResult{
			Status:      int(res.Status),
			ContentType: res.ContentType,
			Body:        string(res.Body),
		})
	}).Methods(http.MethodPost)

	return r
}

// Start serves h on addr until ctx is cancelled.
func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.EntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errs.IsProtocol(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
