package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   string
	Name string
}

type remoteErr struct{ msg string }

func (e *remoteErr) Error() string         { return "remote: " + e.msg }
func (e *remoteErr) ServerMessage() string { return e.msg }

type fakeRemote struct {
	mu      sync.Mutex
	rows    []rec
	lists   int
	failOn  string
	err     error
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeRemote) check(op string) error {
	if f.failOn == op {
		return f.err
	}
	return nil
}

func (f *fakeRemote) List(ctx context.Context) ([]rec, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if err := f.check("list"); err != nil {
		return nil, err
	}
	out := make([]rec, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeRemote) Get(ctx context.Context, id string) (rec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return rec{}, ErrNotFound
}

func (f *fakeRemote) Create(ctx context.Context, payload any) (rec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("create"); err != nil {
		return rec{}, err
	}
	r := rec{ID: fmt.Sprint(len(f.rows) + 1), Name: payload.(string)}
	f.rows = append(f.rows, r)
	return r, nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, payload any) (rec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Name = payload.(string)
			return f.rows[i], nil
		}
	}
	return rec{}, ErrNotFound
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("delete"); err != nil {
		return err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memPersister struct {
	saved   []rec
	has     bool
	cleared bool
}

func (m *memPersister) Save(ctx context.Context, items []rec) error {
	m.saved, m.has = items, true
	return nil
}

func (m *memPersister) Load(ctx context.Context) ([]rec, bool, error) {
	return m.saved, m.has, nil
}

func (m *memPersister) Clear(ctx context.Context) error {
	m.saved, m.has, m.cleared = nil, false, true
	return nil
}

func TestFetchReplacesCollection(t *testing.T) {
	ctx := context.Background()
	r := &fakeRemote{rows: []rec{{ID: "1", Name: "a"}}}
	s := New[rec]("items", r)

	require.NoError(t, s.Fetch(ctx))
	st := s.Snapshot()
	assert.Equal(t, []rec{{ID: "1", Name: "a"}}, st.Items)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, uint64(1), st.Version)

	st.Items[0].Name = "mutated"
	assert.Equal(t, "a", s.Items()[0].Name)
}

func TestMutationsRefetch(t *testing.T) {
	ctx := context.Background()
	r := &fakeRemote{}
	s := New[rec]("items", r)

	created, err := s.Create(ctx, "bolt")
	require.NoError(t, err)
	assert.Equal(t, "bolt", created.Name)
	assert.Equal(t, 1, r.lists)
	assert.Len(t, s.Items(), 1)

	_, err = s.Update(ctx, created.ID, "nut")
	require.NoError(t, err)
	assert.Equal(t, "nut", s.Items()[0].Name)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Empty(t, s.Items())
	assert.Equal(t, 3, r.lists)
}

func TestErrorsSurfaceMessage(t *testing.T) {
	ctx := context.Background()
	r := &fakeRemote{failOn: "list", err: errors.New("boom")}
	s := New[rec]("items", r)

	err := s.Fetch(ctx)
	require.Error(t, err)
	st := s.Snapshot()
	assert.Equal(t, "Failed to fetch items!", st.Error)
	assert.False(t, st.Loading)

	r.failOn, r.err = "create", &remoteErr{msg: "Name is required"}
	_, err = s.Create(ctx, "x")
	require.Error(t, err)
	assert.Equal(t, "Name is required", s.Snapshot().Error)

	r.failOn = ""
	require.NoError(t, s.Fetch(ctx))
	assert.Empty(t, s.Snapshot().Error)
}

func TestFetchByIDSetsSelected(t *testing.T) {
	ctx := context.Background()
	s := New[rec]("vendors", &fakeRemote{rows: []rec{{ID: "7", Name: "v"}}})
	got, err := s.FetchByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "v", got.Name)
	require.NotNil(t, s.Snapshot().Selected)

	_, err = s.FetchByID(ctx, "8")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Failed to fetch the vendor by ID!", s.Snapshot().Error)
}

func TestMutateRefetches(t *testing.T) {
	ctx := context.Background()
	r := &fakeRemote{rows: []rec{{ID: "1", Name: "a"}}}
	s := New[rec]("items", r)
	err := s.Mutate(ctx, "Failed to update item quantity!", func(ctx context.Context) error {
		r.mu.Lock()
		r.rows[0].Name = "patched"
		r.mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "patched", s.Items()[0].Name)

	err = s.Mutate(ctx, "Failed to update item quantity!", func(ctx context.Context) error { return errors.New("x") })
	require.Error(t, err)
	assert.Equal(t, "Failed to update item quantity!", s.Snapshot().Error)
}

func TestLoadingStaysTrueWhileAnyRequestInFlight(t *testing.T) {
	ctx := context.Background()
	r := &fakeRemote{gate: make(chan struct{}), started: make(chan struct{})}
	s := New[rec]("items", r)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Fetch(ctx)
		}()
	}
	<-r.started
	<-r.started
	assert.True(t, s.Snapshot().Loading)

	r.gate <- struct{}{}
	// one request is still blocked
	assert.Eventually(t, func() bool { return s.Version() == 1 }, timeout, tick)
	assert.True(t, s.Snapshot().Loading)

	r.gate <- struct{}{}
	wg.Wait()
	assert.False(t, s.Snapshot().Loading)
	assert.Equal(t, uint64(2), s.Version())
}

func TestSubscribeAndPersist(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}
	s := New[rec]("customers", &fakeRemote{rows: []rec{{ID: "1"}}}, WithPersister[rec](p))

	calls := 0
	cancel := s.Subscribe(func() { calls++ })
	require.NoError(t, s.Fetch(ctx))
	assert.Equal(t, 1, calls)
	assert.Len(t, p.saved, 1)

	cancel()
	require.NoError(t, s.Fetch(ctx))
	assert.Equal(t, 1, calls)

	fresh := New[rec]("customers", &fakeRemote{}, WithPersister[rec](p))
	ok, err := fresh.Hydrate(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, fresh.Items(), 1)

	require.NoError(t, fresh.Reset(ctx))
	assert.Empty(t, fresh.Items())
	assert.True(t, p.cleared)
}

// queuedRemote lets a test decide when and with what each List call returns.
type queuedRemote struct {
	fakeRemote
	calls chan chan []rec
}

func (q *queuedRemote) List(ctx context.Context) ([]rec, error) {
	reply := make(chan []rec)
	q.calls <- reply
	return <-reply, nil
}

type gatedPersister struct {
	mu      sync.Mutex
	saved   []rec
	hold    string
	entered chan struct{}
	release chan struct{}
}

func (g *gatedPersister) Save(ctx context.Context, items []rec) error {
	if len(items) > 0 && items[0].Name == g.hold {
		g.entered <- struct{}{}
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = items
	return nil
}

func (g *gatedPersister) Load(ctx context.Context) ([]rec, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saved, g.saved != nil, nil
}

func (g *gatedPersister) Clear(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = nil
	return nil
}

func (g *gatedPersister) names() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.saved))
	for _, r := range g.saved {
		out = append(out, r.Name)
	}
	return out
}

func TestLastArrivingResponseWins(t *testing.T) {
	ctx := context.Background()
	r := &queuedRemote{calls: make(chan chan []rec)}
	s := New[rec]("items", r)

	var wg sync.WaitGroup
	fetch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Fetch(ctx))
		}()
	}

	fetch()
	first := <-r.calls
	fetch()
	second := <-r.calls

	// the later request answers first
	second <- []rec{{ID: "1", Name: "second"}}
	require.Eventually(t, func() bool { return s.Version() == 1 }, timeout, tick)
	assert.Equal(t, "second", s.Items()[0].Name)

	first <- []rec{{ID: "1", Name: "first"}, {ID: "2", Name: "first"}}
	wg.Wait()

	assert.Equal(t, []rec{{ID: "1", Name: "first"}, {ID: "2", Name: "first"}}, s.Items())
	assert.Equal(t, uint64(2), s.Version())
	assert.False(t, s.Snapshot().Loading)
}

func TestPersistedSnapshotFollowsLastApplied(t *testing.T) {
	ctx := context.Background()
	r := &queuedRemote{calls: make(chan chan []rec)}
	p := &gatedPersister{hold: "A", entered: make(chan struct{}), release: make(chan struct{})}
	s := New[rec]("items", r, WithPersister[rec](p))

	var wg sync.WaitGroup
	fetch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Fetch(ctx))
		}()
	}

	fetch()
	(<-r.calls) <- []rec{{ID: "1", Name: "A"}}
	// A is applied and its save is stuck
	<-p.entered

	fetch()
	(<-r.calls) <- []rec{{ID: "1", Name: "B"}}
	require.Eventually(t, func() bool { return s.Version() == 2 }, timeout, tick)

	close(p.release)
	wg.Wait()

	assert.Equal(t, "B", s.Items()[0].Name)
	assert.Equal(t, []string{"B"}, p.names())

	fresh := New[rec]("items", &fakeRemote{}, WithPersister[rec](p))
	ok, err := fresh.Hydrate(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B", fresh.Items()[0].Name)
}
