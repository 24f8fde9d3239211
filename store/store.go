package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrNotFound は指定IDのレコードが存在しない場合のエラーです。
var ErrNotFound = errors.New("record not found")

// Remote is the collection endpoint a store talks to.
type Remote[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id string, payload any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Persister keeps the last fetched collection across restarts.
type Persister[T any] interface {
	Save(ctx context.Context, items []T) error
	Load(ctx context.Context) ([]T, bool, error)
	Clear(ctx context.Context) error
}

// Messages are the user-facing texts used when the remote gives no message.
type Messages struct {
	Fetch    string
	FetchOne string
	Create   string
	Update   string
	Delete   string
}

// DefaultMessages builds the standard texts, e.g. "Failed to fetch items!".
func DefaultMessages(singular, plural string) Messages {
	return Messages{
		Fetch:    fmt.Sprintf("Failed to fetch %s!", plural),
		FetchOne: fmt.Sprintf("Failed to fetch the %s by ID!", singular),
		Create:   fmt.Sprintf("Failed to create %s!", singular),
		Update:   fmt.Sprintf("Failed to update %s!", singular),
		Delete:   fmt.Sprintf("Failed to delete %s!", singular),
	}
}

// State is an immutable snapshot of a store.
type State[T any] struct {
	Items    []T
	Selected *T
	Loading  bool
	Error    string
	Version  uint64
}

// Store はエンティティ種別ごとの正規コレクションを保持します。
type Store[T any] struct {
	name      string
	remote    Remote[T]
	msgs      Messages
	persister Persister[T]

	mu       sync.Mutex
	saveMu   sync.Mutex
	items    []T
	selected *T
	inflight int
	errMsg   string
	version  uint64
	subs     map[int]func()
	nextSub  int
}

type Option[T any] func(*Store[T])

func WithPersister[T any](p Persister[T]) Option[T] {
	return func(s *Store[T]) { s.persister = p }
}

func WithMessages[T any](m Messages) Option[T] {
	return func(s *Store[T]) { s.msgs = m }
}

// New creates an empty store. name is the plural entity name used in logs
// and default messages.
func New[T any](name string, remote Remote[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		name:   name,
		remote: remote,
		msgs:   DefaultMessages(singular(name), name),
		items:  []T{},
		subs:   make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func singular(name string) string {
	if n := len(name); n > 1 && name[n-1] == 's' {
		return name[:n-1]
	}
	return name
}

func (s *Store[T]) Name() string { return s.name }

// Snapshot returns a copy of the current state.
func (s *Store[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	var sel *T
	if s.selected != nil {
		v := *s.selected
		sel = &v
	}
	return State[T]{Items: items, Selected: sel, Loading: s.inflight > 0, Error: s.errMsg, Version: s.version}
}

func (s *Store[T]) Items() []T {
	return s.Snapshot().Items
}

func (s *Store[T]) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers fn to run after every collection replacement.
// The returned func removes the subscription.
func (s *Store[T]) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store[T]) begin() {
	s.mu.Lock()
	s.inflight++
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Store[T]) fail(err error, fallback string) error {
	msg := MessageOf(err, fallback)
	s.mu.Lock()
	s.inflight--
	s.errMsg = msg
	s.mu.Unlock()
	return fmt.Errorf("%s: %w", s.name, err)
}

func (s *Store[T]) done() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

// replace installs a fresh collection. Responses are applied in arrival order
// and the persisted snapshot always follows the last one applied.
func (s *Store[T]) replace(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	s.mu.Lock()
	s.items = items
	s.version++
	version := s.version
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if s.persister != nil {
		s.persist(ctx, version, items)
	}
	for _, fn := range subs {
		fn()
	}
}

// persist saves items unless a newer collection was installed meanwhile.
func (s *Store[T]) persist(ctx context.Context, version uint64, items []T) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if s.Version() != version {
		return
	}
	if err := s.persister.Save(ctx, items); err != nil {
		log.Printf("WARN: failed to persist %s snapshot: %v", s.name, err)
	}
}

// Fetch は一覧を取得してコレクションを置き換えます。
func (s *Store[T]) Fetch(ctx context.Context) error {
	s.begin()
	items, err := s.remote.List(ctx)
	if err != nil {
		return s.fail(err, s.msgs.Fetch)
	}
	s.replace(ctx, items)
	s.done()
	return nil
}

// FetchByID は1件取得して選択中レコードに設定します。
func (s *Store[T]) FetchByID(ctx context.Context, id string) (T, error) {
	s.begin()
	rec, err := s.remote.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, s.fail(err, s.msgs.FetchOne)
	}
	s.mu.Lock()
	s.selected = &rec
	s.inflight--
	s.mu.Unlock()
	return rec, nil
}

// Create sends a new record and then refetches the whole collection.
func (s *Store[T]) Create(ctx context.Context, payload any) (T, error) {
	s.begin()
	rec, err := s.remote.Create(ctx, payload)
	if err != nil {
		var zero T
		return zero, s.fail(err, s.msgs.Create)
	}
	s.done()
	return rec, s.Fetch(ctx)
}

// Update sends a partial update and then refetches the whole collection.
func (s *Store[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	s.begin()
	rec, err := s.remote.Update(ctx, id, payload)
	if err != nil {
		var zero T
		return zero, s.fail(err, s.msgs.Update)
	}
	s.done()
	return rec, s.Fetch(ctx)
}

// Delete removes a record and then refetches the whole collection.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.remote.Delete(ctx, id); err != nil {
		return s.fail(err, s.msgs.Delete)
	}
	s.done()
	return s.Fetch(ctx)
}

// Mutate runs an entity-specific remote call and then refetches.
func (s *Store[T]) Mutate(ctx context.Context, fallback string, call func(ctx context.Context) error) error {
	s.begin()
	if err := call(ctx); err != nil {
		return s.fail(err, fallback)
	}
	s.done()
	return s.Fetch(ctx)
}

// Hydrate loads the persisted snapshot, if any.
func (s *Store[T]) Hydrate(ctx context.Context) (bool, error) {
	if s.persister == nil {
		return false, nil
	}
	items, ok, err := s.persister.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load %s snapshot: %w", s.name, err)
	}
	if !ok {
		return false, nil
	}
	if items == nil {
		items = []T{}
	}
	s.mu.Lock()
	s.items = items
	s.version++
	s.mu.Unlock()
	return true, nil
}

// Reset はログアウト時に状態と保存済みスナップショットを消去します。
func (s *Store[T]) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.items = []T{}
	s.selected = nil
	s.errMsg = ""
	s.version++
	s.mu.Unlock()
	if s.persister != nil {
		s.saveMu.Lock()
		defer s.saveMu.Unlock()
		if err := s.persister.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear %s snapshot: %w", s.name, err)
		}
	}
	return nil
}
