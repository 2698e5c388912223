package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/pkg/query"
)

// Content is the shape the in-memory repository can store and patch.
type Content[T any] interface {
	entity.Record
	GetBase() *entity.Base
	Clone() T
}

// ContentRepository keeps records in insertion order. Mutations replace
// the stored record with a patched copy; records handed out are never
// modified afterwards.
type ContentRepository[T Content[T]] struct {
	mu      sync.RWMutex
	kind    entity.ContentKind
	records []T
	now     func() time.Time

	listErr     error
	mutateErrs  map[string]error
	mutateDelay time.Duration
}

func NewContentRepository[T Content[T]](kind entity.ContentKind, records ...T) *ContentRepository[T] {
	r := &ContentRepository[T]{
		kind:       kind,
		now:        time.Now,
		mutateErrs: make(map[string]error),
	}
	r.Put(records...)
	return r
}

func (r *ContentRepository[T]) Kind() entity.ContentKind {
	return r.kind
}

// Put inserts records or replaces those with the same id.
func (r *ContentRepository[T]) Put(records ...T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if i := r.indexLocked(rec.GetId()); i >= 0 {
			r.records[i] = rec
			continue
		}
		r.records = append(r.records, rec)
	}
}

// Get returns the stored record by id.
func (r *ContentRepository[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexLocked(id); i >= 0 {
		return r.records[i], true
	}
	var zero T
	return zero, false
}

// InjectListError makes every List call fail with err until cleared with nil.
func (r *ContentRepository[T]) InjectListError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listErr = err
}

// InjectMutationError makes Mutate(id) fail with err until cleared with nil.
func (r *ContentRepository[T]) InjectMutationError(id string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err == nil {
		delete(r.mutateErrs, id)
		return
	}
	r.mutateErrs[id] = err
}

// SimulateLatency delays every Mutate by d, honoring context cancellation.
func (r *ContentRepository[T]) SimulateLatency(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mutateDelay = d
}

func (r *ContentRepository[T]) List(ctx context.Context, q contract.ListQuery) (*contract.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, &contract.FetchError{Kind: r.kind, Op: "list", Err: err}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.listErr != nil {
		return nil, &contract.FetchError{Kind: r.kind, Op: "list", Err: r.listErr}
	}

	matched := query.Filter(r.records, listPredicate(q))
	total := int64(len(matched))

	if q.Feed {
		slices.SortStableFunc(matched, func(a, b T) int { return contract.FeedCompare(a, b) })
		if q.After != nil {
			after := *q.After
			matched = slices.DeleteFunc(matched, func(rec T) bool {
				return contract.CursorOf(rec).Compare(after) <= 0
			})
		}
		page := limit(matched, q.Limit)
		out := &contract.Page[T]{Items: page, Total: total, HasMore: len(page) < len(matched)}
		if out.HasMore {
			out.NextCursor = contract.CursorOf(page[len(page)-1]).Encode()
		}
		return out, nil
	}

	if q.Sort.Field != "" {
		dir := query.Asc
		if q.Sort.Desc {
			dir = query.Desc
		}
		matched = query.SortStable(matched, query.SortState{Key: q.Sort.Field, Direction: dir})
	}
	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			matched = matched[:0]
		} else {
			matched = matched[q.Offset:]
		}
	}
	page := limit(matched, q.Limit)
	return &contract.Page[T]{Items: page, Total: total, HasMore: len(page) < len(matched)}, nil
}

func (r *ContentRepository[T]) Mutate(ctx context.Context, id string, patch contract.Patch) error {
	if err := patch.Validate(); err != nil {
		return contract.NewMutationError(id, err)
	}
	r.mu.RLock()
	delay := r.mutateDelay
	r.mu.RUnlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return contract.NewMutationError(id, ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return contract.NewMutationError(id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.mutateErrs[id]; ok {
		return contract.NewMutationError(id, err)
	}
	i := r.indexLocked(id)
	if i < 0 {
		return contract.NewMutationError(id, contract.ErrNotFound)
	}

	next := r.records[i].Clone()
	patch.ApplyTo(next.GetBase(), r.now())
	r.records[i] = next
	return nil
}

func (r *ContentRepository[T]) indexLocked(id string) int {
	for i, rec := range r.records {
		if rec.GetId() == id {
			return i
		}
	}
	return -1
}

func listPredicate(q contract.ListQuery) query.Predicate[entity.Record] {
	preds := []query.Predicate[entity.Record]{}
	if q.Status != "" {
		preds = append(preds, query.StatusIs[entity.Record](q.Status))
	}
	if q.Level != "" {
		preds = append(preds, query.LevelIs[entity.Record](q.Level))
	}
	if len(q.Tags) > 0 {
		preds = append(preds, query.HasAnyTag[entity.Record](query.NewTagSet(q.Tags...)))
	}
	if q.GoalId != "" {
		preds = append(preds, refEquals(q.GoalId, entity.Taxonomic.GetGoalId))
	}
	if q.OutcomeId != "" {
		preds = append(preds, refEquals(q.OutcomeId, entity.Taxonomic.GetOutcomeId))
	}
	if text := strings.TrimSpace(q.FreeText); text != "" {
		preds = append(preds, query.TextContains(text, titleText))
	}
	return query.And(preds...)
}

func refEquals(id string, get func(entity.Taxonomic) *string) query.Predicate[entity.Record] {
	return func(r entity.Record) bool {
		t, ok := r.(entity.Taxonomic)
		if !ok {
			return false
		}
		ref := get(t)
		return ref != nil && *ref == id
	}
}

// titleText mirrors the SQL ILIKE over both title columns.
func titleText(r entity.Record) string {
	if s, ok := r.(entity.Searchable); ok {
		t := s.SearchTitle()
		return t.Vi + "\n" + t.En
	}
	return query.TitleField(r)
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return slices.Clone(items)
	}
	return slices.Clone(items[:n])
}
