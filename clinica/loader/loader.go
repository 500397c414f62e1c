// Package loader implements the incremental list protocol shared by the
// patient and doctor screens: a reset load of page 1, then one page at a
// time appended as the user scrolls, de-duplicated by primary key.
//
// A Loader allows one fetch in flight at a time. It does not reconcile rows
// when the server inserts or deletes records between pages; a shifted page
// may skip a row, and the de-duplication hides rows delivered twice.
package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

var (
	// ErrBusy is returned when a fetch is already in flight for this loader.
	ErrBusy = errors.New("loader: fetch already in flight")
	// ErrExhausted is returned by LoadMore once every row has been loaded.
	ErrExhausted = errors.New("loader: no more rows")
)

// Keyed is a record with a primary key.
type Keyed interface {
	Key() int
}

// Fetcher retrieves one page. The clinica client methods Pacientes and
// Medicos have this shape.
type Fetcher[T any] func(ctx context.Context, page int, search string) models.Result[[]T]

// FetchError carries the message of a failed page fetch.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// State is a copy of the loader state, safe to render.
type State[T any] struct {
	Items   []T
	Page    int
	Total   int
	HasMore bool
	Search  string
	Loading bool
	Loaded  bool
	// Message is the last fetch failure, cleared by the next success.
	Message string
}

type Option func(*config)

type config struct {
	log zerolog.Logger
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.log = logger
	}
}

type Loader[T Keyed] struct {
	fetch Fetcher[T]
	log   zerolog.Logger

	mu      sync.Mutex
	items   []T
	seen    map[int]struct{}
	page    int
	total   int
	hasMore bool
	search  string
	loading bool
	loaded  bool
	message string
}

func New[T Keyed](fetch Fetcher[T], opts ...Option) *Loader[T] {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader[T]{
		fetch:   fetch,
		log:     cfg.log,
		seen:    map[int]struct{}{},
		page:    1,
		hasMore: true,
	}
}

// Reset replaces the rows with page 1 of the current search.
func (l *Loader[T]) Reset(ctx context.Context) error {
	return l.load(ctx, true, nil)
}

// Search switches to a new query and reloads from page 1. Clearing the query
// reloads the unfiltered list the same way. The query only sticks once its
// first page arrived; while a fetch is in flight ErrBusy is returned.
func (l *Loader[T]) Search(ctx context.Context, query string) error {
	return l.load(ctx, true, &query)
}

// LoadMore appends the next page. It is what the scroll threshold triggers.
// Before the first load it behaves like Reset.
func (l *Loader[T]) LoadMore(ctx context.Context) error {
	return l.load(ctx, false, nil)
}

func (l *Loader[T]) load(ctx context.Context, reset bool, query *string) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrBusy
	}
	if !l.loaded {
		reset = true
	}
	search := l.search
	if query != nil {
		search = *query
	}
	page := 1
	if !reset {
		if !l.hasMore || len(l.items) >= l.total {
			l.mu.Unlock()
			return ErrExhausted
		}
		page = l.page + 1
	}
	l.loading = true
	l.mu.Unlock()

	res := l.fetch(ctx, page, search)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false

	if !res.Success {
		// the cursor is untouched so the same page is asked for again
		l.message = res.Message
		l.log.Warn().Err(res.Err).Int("page", page).Str("search", search).Msg("page fetch failed")
		return &FetchError{Message: res.Message, Err: res.Err}
	}

	if reset {
		l.search = search
		l.items = append([]T(nil), res.Data...)
		l.seen = make(map[int]struct{}, len(res.Data))
		for _, item := range res.Data {
			l.seen[item.Key()] = struct{}{}
		}
	} else {
		added := 0
		for _, item := range res.Data {
			if _, dup := l.seen[item.Key()]; dup {
				continue
			}
			l.seen[item.Key()] = struct{}{}
			l.items = append(l.items, item)
			added++
		}
		if added < len(res.Data) {
			l.log.Debug().Int("page", page).Int("dropped", len(res.Data)-added).Msg("duplicate rows dropped")
		}
	}

	// the newest total wins even when it shrank below what is already loaded
	l.page = page
	l.total = res.Total
	l.hasMore = len(res.Data) > 0 && len(l.items) < l.total
	l.loaded = true
	l.message = ""
	return nil
}

// Remove drops a row after it was deleted on the server and lowers the total
// by one, without refetching.
func (l *Loader[T]) Remove(key int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, item := range l.items {
		if item.Key() != key {
			continue
		}
		l.items = append(l.items[:i:i], l.items[i+1:]...)
		delete(l.seen, key)
		if l.total > 0 {
			l.total--
		}
		l.hasMore = l.hasMore && len(l.items) < l.total
		return true
	}
	return false
}

func (l *Loader[T]) Snapshot() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State[T]{
		Items:   append([]T(nil), l.items...),
		Page:    l.page,
		Total:   l.total,
		HasMore: l.hasMore,
		Search:  l.search,
		Loading: l.loading,
		Loaded:  l.loaded,
		Message: l.message,
	}
}

// Empty reports the "no records" condition: a load finished with no rows.
func (l *Loader[T]) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded && !l.loading && len(l.items) == 0
}

func (l *Loader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}
