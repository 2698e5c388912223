// Package discovery implements the public content discovery engine:
// taxonomy and tag filters, debounced bilingual search, and infinite
// scroll over pages fetched from a repository. Filtering and search run
// over already-loaded pages only.
package discovery

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/pkg/clock"
	"portfolio-cms-be/pkg/query"
	"portfolio-cms-be/pkg/search"
)

const (
	logModule = "DISCOVERY"

	DefaultDebounce = 300 * time.Millisecond
	DefaultPageSize = 9
)

// Item is a record the engine can filter, rank and page.
type Item = entity.Discoverable

type Config struct {
	Lang     entity.Lang
	Debounce time.Duration
	PageSize int
	Clock    clock.Clock
	Matcher  *search.Matcher
	Logger   logger.ILogger
}

// View is the applied result. Seq identifies the request it answers.
type View[T Item] struct {
	Items   []T
	Query   string
	Filter  Filter
	Seq     uint64
	Loaded  int
	HasMore bool
}

// Engine coordinates state changes from callers and timer callbacks with
// a mutex. Every request that changes what should be shown takes a new
// sequence number; a result is committed only if its number is still the
// latest, so older work finishing late is dropped instead of cancelled.
type Engine[T Item] struct {
	mu sync.Mutex

	repo   contract.ContentRepository[T]
	cfg    Config
	logger logger.ILogger

	loaded  []T
	seen    map[string]struct{}
	next    *contract.Cursor
	hasMore bool
	loading bool
	loadGen uint64

	filter  Filter
	query   search.Query
	pending string

	seq        uint64
	timerGen   uint64
	timer      clock.Timer
	debouncing bool
	inflight   int

	view      View[T]
	applied   int
	discarded int
	listeners []func(View[T])

	// applyHook runs while a result is being computed, outside the lock.
	applyHook func()
}

func New[T Item](repo contract.ContentRepository[T], cfg Config) *Engine[T] {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Lang == "" {
		cfg.Lang = entity.DefaultLang
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Matcher == nil {
		cfg.Matcher = search.NewMatcher()
	}
	l := cfg.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Engine[T]{
		repo:   repo,
		cfg:    cfg,
		logger: l,
		seen:   make(map[string]struct{}),
		filter: Filter{Tags: query.NewTagSet()},
	}
}

// OnApply registers fn to receive every committed view.
func (e *Engine[T]) OnApply(fn func(View[T])) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners = append(e.listeners, fn)
}

// Reset drops loaded pages and fetches the first page of the feed.
func (e *Engine[T]) Reset(ctx context.Context) error {
	e.mu.Lock()
	e.loadGen++
	gen := e.loadGen
	e.loading = true
	e.mu.Unlock()

	page, err := e.fetch(ctx, nil)

	e.mu.Lock()
	if gen != e.loadGen {
		e.mu.Unlock()
		return nil
	}
	e.loading = false
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.loaded = nil
	e.seen = make(map[string]struct{})
	e.mergeLocked(page)
	e.mu.Unlock()

	e.apply()
	return nil
}

// LoadMore fetches the page after the current cursor and merges it. It is
// a no-op when the feed is exhausted or a load is already running.
func (e *Engine[T]) LoadMore(ctx context.Context) error {
	e.mu.Lock()
	if e.loading || !e.hasMore {
		e.mu.Unlock()
		return nil
	}
	e.loading = true
	gen := e.loadGen
	after := e.next
	e.mu.Unlock()

	page, err := e.fetch(ctx, after)

	e.mu.Lock()
	if gen != e.loadGen {
		// A Reset superseded this load.
		e.mu.Unlock()
		e.logger.Debug(logModule, "discarding stale page", map[string]interface{}{"gen": gen})
		return nil
	}
	e.loading = false
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.mergeLocked(page)
	e.mu.Unlock()

	e.apply()
	return nil
}

// SetSearchQuery schedules raw to be applied once the debounce window
// passes without another call. It invalidates any result being computed.
func (e *Engine[T]) SetSearchQuery(raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = raw
	e.seq++
	e.timerGen++
	gen := e.timerGen
	if e.timer != nil {
		e.timer.Stop()
	}
	e.debouncing = true
	e.timer = e.cfg.Clock.AfterFunc(e.cfg.Debounce, func() { e.fire(gen) })
}

// Flush applies a pending query immediately.
func (e *Engine[T]) Flush() {
	e.mu.Lock()
	if !e.debouncing {
		e.mu.Unlock()
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timerGen++
	e.debouncing = false
	e.query = search.Compile(e.pending)
	e.mu.Unlock()

	e.apply()
}

// SetTaxonomy replaces the taxonomy filter and applies it immediately. An
// unknown level is ignored.
func (e *Engine[T]) SetTaxonomy(t Taxonomy) {
	t.GoalId = strings.TrimSpace(t.GoalId)
	t.OutcomeId = strings.TrimSpace(t.OutcomeId)
	if strings.EqualFold(string(t.Level), query.FilterAll) {
		t.Level = ""
	}
	if t.Level != "" && !t.Level.Valid() {
		err := &query.ValidationError{Field: "level", Value: string(t.Level), Reason: "unknown level"}
		e.logger.Warn(logModule, "ignoring taxonomy level", map[string]interface{}{"error": err.Error()})
		t.Level = ""
	}

	e.mu.Lock()
	e.filter.Taxonomy = t
	e.mu.Unlock()

	e.apply()
}

// SetTags replaces the tag filter (OR semantics) and applies it immediately.
func (e *Engine[T]) SetTags(tags []string) {
	e.mu.Lock()
	e.filter.Tags = query.NewTagSet(tags...)
	e.mu.Unlock()

	e.apply()
}

func (e *Engine[T]) ToggleTag(tag string) {
	e.mu.Lock()
	e.filter.Tags = e.filter.Tags.Toggle(tag)
	e.mu.Unlock()

	e.apply()
}

// Close cancels a pending debounced query. The last view stays readable.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.timerGen++
	e.debouncing = false
}

// View returns the last committed view.
func (e *Engine[T]) View() View[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.view
	v.Items = slices.Clone(e.view.Items)
	return v
}

func (e *Engine[T]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.debouncing:
		return StateDebouncing
	case e.inflight > 0:
		return StateApplying
	}
	return StateIdle
}

// AppliedPasses counts committed applications.
func (e *Engine[T]) AppliedPasses() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.applied
}

// DiscardedPasses counts results dropped because a newer request existed.
func (e *Engine[T]) DiscardedPasses() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.discarded
}

func (e *Engine[T]) HasMore() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.hasMore
}

func (e *Engine[T]) fire(gen uint64) {
	e.mu.Lock()
	if gen != e.timerGen {
		// Reset after this timer was already due.
		e.mu.Unlock()
		return
	}
	e.debouncing = false
	e.timer = nil
	e.query = search.Compile(e.pending)
	e.mu.Unlock()

	e.apply()
}

// apply computes the view for the current inputs and commits it unless a
// newer request arrived meanwhile.
func (e *Engine[T]) apply() bool {
	e.mu.Lock()
	e.seq++
	seq := e.seq
	records := slices.Clone(e.loaded)
	filter := e.filter.clone()
	q := e.query
	hasMore := e.hasMore
	hook := e.applyHook
	e.inflight++
	e.mu.Unlock()

	if hook != nil {
		hook()
	}
	items := compute(e.cfg.Matcher, records, filter, q, e.cfg.Lang)

	e.mu.Lock()
	e.inflight--
	if seq != e.seq {
		e.discarded++
		latest := e.seq
		e.mu.Unlock()
		e.logger.Debug(logModule, "discarding stale result", map[string]interface{}{
			"seq":    seq,
			"latest": latest,
			"query":  q.Raw,
		})
		return false
	}
	e.view = View[T]{
		Items:   items,
		Query:   q.Raw,
		Filter:  filter,
		Seq:     seq,
		Loaded:  len(records),
		HasMore: hasMore,
	}
	e.applied++
	listeners := slices.Clone(e.listeners)
	view := e.view
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(view)
	}
	return true
}

func (e *Engine[T]) fetch(ctx context.Context, after *contract.Cursor) (*contract.Page[T], error) {
	page, err := e.repo.List(ctx, contract.ListQuery{
		Status: entity.ContentStatusPublished,
		Feed:   true,
		After:  after,
		Limit:  e.cfg.PageSize,
	})
	if err != nil {
		var ferr *contract.FetchError
		if !errors.As(err, &ferr) {
			err = &contract.FetchError{Kind: e.repo.Kind(), Op: "feed", Err: err}
		}
		e.logger.Error(logModule, "feed fetch failed", map[string]interface{}{"error": err})
		return nil, err
	}
	return page, nil
}

// mergeLocked appends unseen records and keeps the loaded set in feed
// order. The cursor advances to the last record of the fetched page.
func (e *Engine[T]) mergeLocked(page *contract.Page[T]) {
	for _, r := range page.Items {
		if _, dup := e.seen[r.GetId()]; dup {
			continue
		}
		e.seen[r.GetId()] = struct{}{}
		e.loaded = append(e.loaded, r)
	}
	slices.SortStableFunc(e.loaded, func(a, b T) int { return contract.FeedCompare(a, b) })

	e.hasMore = page.HasMore
	if n := len(page.Items); n > 0 {
		c := contract.CursorOf(page.Items[n-1])
		e.next = &c
	}
}
