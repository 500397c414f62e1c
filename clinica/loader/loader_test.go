package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/GyroTools/clinica-connector-go/clinica/models"
)

type row struct {
	ID   int
	Name string
}

func (r row) Key() int { return r.ID }

// server pages rows the way the clinic API does: 6 per page, filtered by a
// case-insensitive substring match.
type server struct {
	mu    sync.Mutex
	rows  []row
	calls []int
	// overlap re-sends the last row of the previous page at the head of
	// every page after the first
	overlap bool
	// failOnce makes the first request for that page fail
	failOnce map[int]bool
}

func newServer(n int) *server {
	s := &server{failOnce: map[int]bool{}}
	for i := 1; i <= n; i++ {
		s.rows = append(s.rows, row{ID: i, Name: fmt.Sprintf("Paciente %d", i)})
	}
	return s
}

func (s *server) fetch(ctx context.Context, page int, search string) models.Result[[]row] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, page)
	if s.failOnce[page] {
		delete(s.failOnce, page)
		return models.Fail[[]row]("Error de conexión con el servidor", errors.New("boom"))
	}

	var matched []row
	for _, r := range s.rows {
		if search == "" || strings.Contains(strings.ToLower(r.Name), strings.ToLower(search)) {
			matched = append(matched, r)
		}
	}
	start := (page - 1) * models.PageSize
	if s.overlap && page > 1 {
		start--
	}
	end := start + models.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	res := models.Ok(append([]row{}, matched[start:end]...))
	res.Total = len(matched)
	return res
}

func keysUnique(t *testing.T, items []row) {
	t.Helper()
	seen := map[int]bool{}
	for _, it := range items {
		assert.Assert(t, !seen[it.ID], "duplicate key %d", it.ID)
		seen[it.ID] = true
	}
}

func TestReset_LoadsFirstPage(t *testing.T) {
	srv := newServer(14)
	l := New[row](srv.fetch)

	assert.NilError(t, l.Reset(context.Background()))
	st := l.Snapshot()
	assert.Equal(t, len(st.Items), 6)
	assert.Equal(t, st.Items[0].ID, 1)
	assert.Equal(t, st.Page, 1)
	assert.Equal(t, st.Total, 14)
	assert.Assert(t, st.HasMore)
	assert.Assert(t, st.Loaded)
}

func TestLoadMore_PagesUntilTotal(t *testing.T) {
	srv := newServer(14)
	l := New[row](srv.fetch)
	ctx := context.Background()

	assert.NilError(t, l.Reset(ctx))
	assert.NilError(t, l.LoadMore(ctx))
	assert.NilError(t, l.LoadMore(ctx))

	st := l.Snapshot()
	assert.Equal(t, len(st.Items), 14)
	assert.Equal(t, st.Page, 3)
	assert.Assert(t, !st.HasMore)

	assert.Assert(t, errors.Is(l.LoadMore(ctx), ErrExhausted))
	assert.DeepEqual(t, srv.calls, []int{1, 2, 3})
}

func TestLoadMore_BeforeFirstLoadResets(t *testing.T) {
	srv := newServer(3)
	l := New[row](srv.fetch)

	assert.NilError(t, l.LoadMore(context.Background()))
	st := l.Snapshot()
	assert.Equal(t, len(st.Items), 3)
	assert.Equal(t, st.Page, 1)
	assert.Assert(t, !st.HasMore)
}

func TestSearch_ReplacesStaleRows(t *testing.T) {
	srv := newServer(14)
	srv.rows = append(srv.rows, row{ID: 100, Name: "Ana García"}, row{ID: 101, Name: "Luis Garcia"})
	l := New[row](srv.fetch)
	ctx := context.Background()

	assert.NilError(t, l.Reset(ctx))
	assert.NilError(t, l.LoadMore(ctx))
	assert.Equal(t, len(l.Items()), 12)

	assert.NilError(t, l.Search(ctx, "garcia"))
	st := l.Snapshot()
	assert.DeepEqual(t, st.Items, []row{{ID: 101, Name: "Luis Garcia"}})
	assert.Equal(t, st.Search, "garcia")
	assert.Equal(t, st.Page, 1)
	assert.Equal(t, st.Total, 1)
	assert.Assert(t, !st.HasMore)

	// clearing the query goes back to the unfiltered first page
	assert.NilError(t, l.Search(ctx, ""))
	st = l.Snapshot()
	assert.Equal(t, len(st.Items), 6)
	assert.Equal(t, st.Items[0].ID, 1)
	assert.Equal(t, st.Total, 16)
}

func TestSearch_NoResults(t *testing.T) {
	srv := newServer(5)
	l := New[row](srv.fetch)

	assert.NilError(t, l.Search(context.Background(), "Garcia"))
	st := l.Snapshot()
	assert.Equal(t, len(st.Items), 0)
	assert.Equal(t, st.Total, 0)
	assert.Assert(t, !st.HasMore)
	assert.Assert(t, l.Empty())
}

func TestLoadMore_DropsRedeliveredRows(t *testing.T) {
	srv := newServer(20)
	srv.overlap = true
	l := New[row](srv.fetch)
	ctx := context.Background()

	assert.NilError(t, l.Reset(ctx))
	for {
		err := l.LoadMore(ctx)
		if errors.Is(err, ErrExhausted) {
			break
		}
		assert.NilError(t, err)
		keysUnique(t, l.Items())
	}
	items := l.Items()
	keysUnique(t, items)
	assert.Equal(t, items[len(items)-1].ID, 20)
}

func TestHasMore_MatchesEndCondition(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 12, 13, 30} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			srv := newServer(n)
			l := New[row](srv.fetch)
			ctx := context.Background()

			lastPageLen := -1
			fetch := l.fetch
			l.fetch = func(ctx context.Context, page int, search string) models.Result[[]row] {
				res := fetch(ctx, page, search)
				lastPageLen = len(res.Data)
				return res
			}

			assert.NilError(t, l.Reset(ctx))
			for {
				st := l.Snapshot()
				done := lastPageLen == 0 || len(st.Items) >= st.Total
				assert.Equal(t, st.HasMore, !done)
				if !st.HasMore {
					break
				}
				assert.NilError(t, l.LoadMore(ctx))
			}
			assert.Equal(t, len(l.Items()), n)
		})
	}
}

func TestHasMore_EmptyPageEndsPaging(t *testing.T) {
	// the server claims more rows than it actually delivers
	fetch := func(ctx context.Context, page int, search string) models.Result[[]row] {
		var data []row
		if page == 1 {
			data = []row{{ID: 1}, {ID: 2}}
		}
		res := models.Ok(data)
		res.Total = 10
		return res
	}
	l := New[row](fetch)
	ctx := context.Background()

	assert.NilError(t, l.Reset(ctx))
	assert.Assert(t, l.Snapshot().HasMore)
	assert.NilError(t, l.LoadMore(ctx))
	st := l.Snapshot()
	assert.Assert(t, !st.HasMore)
	assert.Equal(t, len(st.Items), 2)
	assert.Assert(t, errors.Is(l.LoadMore(ctx), ErrExhausted))
}

func TestSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	fetch := func(ctx context.Context, page int, search string) models.Result[[]row] {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		res := models.Ok([]row{{ID: 1}})
		res.Total = 20
		return res
	}
	l := New[row](fetch)
	ctx := context.Background()

	done := make(chan error)
	go func() {
		done <- l.Reset(ctx)
	}()
	<-started

	assert.Assert(t, l.Snapshot().Loading)
	assert.Assert(t, errors.Is(l.LoadMore(ctx), ErrBusy))
	assert.Assert(t, errors.Is(l.Reset(ctx), ErrBusy))
	assert.Assert(t, errors.Is(l.Search(ctx, "ana"), ErrBusy))

	close(release)
	assert.NilError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, calls, 1)
	assert.Equal(t, l.Snapshot().Search, "")
}

func TestFailedPageIsRetried(t *testing.T) {
	srv := newServer(14)
	srv.failOnce[2] = true
	l := New[row](srv.fetch)
	ctx := context.Background()

	assert.NilError(t, l.Reset(ctx))

	err := l.LoadMore(ctx)
	var fetchErr *FetchError
	assert.Assert(t, errors.As(err, &fetchErr))
	assert.Equal(t, fetchErr.Message, "Error de conexión con el servidor")
	st := l.Snapshot()
	assert.Equal(t, st.Page, 1)
	assert.Equal(t, len(st.Items), 6)
	assert.Equal(t, st.Message, "Error de conexión con el servidor")
	assert.Assert(t, !st.Loading)

	assert.NilError(t, l.LoadMore(ctx))
	st = l.Snapshot()
	assert.Equal(t, st.Page, 2)
	assert.Equal(t, len(st.Items), 12)
	assert.Equal(t, st.Message, "")
	assert.DeepEqual(t, srv.calls, []int{1, 2, 2})
}

func TestFailedSearchKeepsPreviousQuery(t *testing.T) {
	srv := newServer(8)
	l := New[row](srv.fetch)
	ctx := context.Background()

	assert.NilError(t, l.Reset(ctx))
	srv.failOnce[1] = true
	assert.ErrorContains(t, l.Search(ctx, "Paciente 3"), "Error de conexión")

	st := l.Snapshot()
	assert.Equal(t, st.Search, "")
	assert.Equal(t, len(st.Items), 6)
}

func TestShrinkingTotalStopsPaging(t *testing.T) {
	srv := newServer(14)
	l := New[row](srv.fetch)
	ctx := context.Background()

	assert.NilError(t, l.Reset(ctx))
	assert.NilError(t, l.LoadMore(ctx))

	// rows deleted on the server between pages
	srv.mu.Lock()
	srv.rows = srv.rows[:9]
	srv.mu.Unlock()

	assert.NilError(t, l.LoadMore(ctx))
	st := l.Snapshot()
	assert.Equal(t, st.Total, 9)
	assert.Equal(t, len(st.Items), 12)
	assert.Assert(t, !st.HasMore)
	assert.Assert(t, errors.Is(l.LoadMore(ctx), ErrExhausted))
}

func TestRemove(t *testing.T) {
	srv := newServer(8)
	l := New[row](srv.fetch)
	ctx := context.Background()
	assert.NilError(t, l.Reset(ctx))

	assert.Assert(t, l.Remove(3))
	assert.Assert(t, !l.Remove(3))
	st := l.Snapshot()
	assert.Equal(t, len(st.Items), 5)
	assert.Equal(t, st.Total, 7)
	for _, it := range st.Items {
		assert.Assert(t, it.ID != 3)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	srv := newServer(3)
	l := New[row](srv.fetch)
	assert.NilError(t, l.Reset(context.Background()))

	st := l.Snapshot()
	st.Items[0].Name = "changed"
	assert.Equal(t, l.Items()[0].Name, "Paciente 1")
}
