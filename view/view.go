package view

import (
	"sync"

	"nightshift/filter"
	"nightshift/model"
	"nightshift/store"
)

// Result is one derivation: the filtered records and their stats.
type Result[T any, S any] struct {
	Records  []T            `json:"records"`
	Stats    S              `json:"stats"`
	Criteria model.Criteria `json:"criteria"`
	Loading  bool           `json:"loading"`
	Error    string         `json:"error,omitempty"`
}

// View はストアのコレクションから絞り込み結果と集計値を導出します。
// It recomputes only when the criteria or the store version change.
type View[T any, S any] struct {
	src   *store.Store[T]
	cfg   filter.Config[T]
	stats func([]T) S

	mu       sync.Mutex
	criteria model.Criteria
	stale    bool
	version  uint64
	cached   Result[T, S]
	cancel   func()
}

func New[T any, S any](src *store.Store[T], cfg filter.Config[T], stats func([]T) S) *View[T, S] {
	v := &View[T, S]{
		src:      src,
		cfg:      cfg,
		stats:    stats,
		criteria: model.Criteria{Status: filter.All, Category: filter.All},
		stale:    true,
	}
	v.cancel = src.Subscribe(v.invalidate)
	return v
}

func (v *View[T, S]) invalidate() {
	v.mu.Lock()
	v.stale = true
	v.mu.Unlock()
}

// Close detaches the view from its store.
func (v *View[T, S]) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *View[T, S]) SetStatus(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.criteria.Status != status {
		v.criteria.Status = status
		v.stale = true
	}
}

func (v *View[T, S]) SetCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.criteria.Category != category {
		v.criteria.Category = category
		v.stale = true
	}
}

func (v *View[T, S]) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.criteria.Search != term {
		v.criteria.Search = term
		v.stale = true
	}
}

// SetCriteria replaces all three filters at once.
func (v *View[T, S]) SetCriteria(c model.Criteria) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.criteria != c {
		v.criteria = c
		v.stale = true
	}
}

func (v *View[T, S]) Criteria() model.Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// Result returns the current derivation, recomputing it from one store
// snapshot when stale.
func (v *View[T, S]) Result() Result[T, S] {
	snap := v.src.Snapshot()
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resultLocked(snap)
}

// Query sets the criteria and returns the derivation in one step, so
// concurrent callers never see each other's criteria.
func (v *View[T, S]) Query(c model.Criteria) Result[T, S] {
	snap := v.src.Snapshot()
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.criteria != c {
		v.criteria = c
		v.stale = true
	}
	return v.resultLocked(snap)
}

func (v *View[T, S]) resultLocked(snap store.State[T]) Result[T, S] {
	if !v.stale && v.version == snap.Version {
		v.cached.Loading = snap.Loading
		v.cached.Error = snap.Error
		return v.cached
	}
	records := filter.Apply(snap.Items, v.cfg, v.criteria)
	v.cached = Result[T, S]{
		Records:  records,
		Stats:    v.stats(records),
		Criteria: v.criteria,
		Loading:  snap.Loading,
		Error:    snap.Error,
	}
	v.version = snap.Version
	v.stale = false
	return v.cached
}

// Compute derives a result for one-off criteria without touching the view state.
func Compute[T any, S any](items []T, cfg filter.Config[T], stats func([]T) S, c model.Criteria) Result[T, S] {
	records := filter.Apply(items, cfg, c)
	return Result[T, S]{Records: records, Stats: stats(records), Criteria: c}
}
