// Package grid implements the generic admin data grid: filter, then sort,
// then paginate over an in-memory dataset, with id-keyed selection.
package grid

import (
	"sync"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/pkg/query"
)

const logModule = "GRID"

type Scope string

const (
	ScopeVisible     Scope = "visible"
	ScopeAllMatching Scope = "all_matching"
)

type Config struct {
	PageSize int
	// SortableFields restricts accepted sort keys; nil accepts any key.
	SortableFields []string
	// SearchField supplies the text FreeText is matched against.
	SearchField func(entity.Record) string
	Logger      logger.ILogger
}

// View is a read-only snapshot of the grid.
type View[T entity.Record] struct {
	DatasetKey    string
	Items         []T
	PageIndex     int
	PageSize      int
	PageCount     int
	FilteredCount int
	TotalCount    int
	Sort          query.SortState
	Filter        query.FilterState
	SelectedIds   []string
}

// Engine is safe for concurrent use.
type Engine[T entity.Record] struct {
	mu sync.Mutex

	cfg        Config
	logger     logger.ILogger
	datasetKey string
	records    []T
	filter     query.FilterState
	sort       query.SortState
	page       query.PageState
	selection  *query.Selection

	filtered []T
}

func New[T entity.Record](cfg Config) *Engine[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = query.DefaultPageSize
	}
	if cfg.SearchField == nil {
		cfg.SearchField = query.TitleField
	}
	l := cfg.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Engine[T]{
		cfg:       cfg,
		logger:    l,
		page:      query.PageState{Size: cfg.PageSize},
		selection: query.NewSelection(),
		filter:    query.FilterState{Tags: query.NewTagSet()},
	}
}

// SetDataset replaces the underlying records. A new key clears the
// selection; the same key (a refetch) keeps it, minus ids that vanished.
func (e *Engine[T]) SetDataset(key string, records []T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if key != e.datasetKey {
		if e.selection.Len() > 0 {
			e.logger.Debug(logModule, "dataset changed, clearing selection", map[string]interface{}{
				"from": e.datasetKey,
				"to":   key,
			})
		}
		e.selection.Clear()
		e.page.Index = 0
	}
	e.datasetKey = key
	e.records = append([]T(nil), records...)

	present := make(map[string]struct{}, len(e.records))
	for _, r := range e.records {
		present[r.GetId()] = struct{}{}
	}
	e.selection.Retain(func(id string) bool {
		_, ok := present[id]
		return ok
	})

	e.recompute()
}

// SetSort re-sorts the filtered view. A malformed key or direction is
// treated as no sort.
func (e *Engine[T]) SetSort(key, direction string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := query.ParseSort(key, direction, e.cfg.SortableFields)
	if err != nil {
		e.logger.Warn(logModule, "ignoring sort", map[string]interface{}{"error": err.Error()})
		s = query.SortState{}
	}
	e.sort = s
	e.recompute()
}

// SetFilter merges patch into the filter state. It never clears the
// selection.
func (e *Engine[T]) SetFilter(patch query.FilterPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, errs := e.filter.Merge(patch)
	for _, err := range errs {
		e.logger.Warn(logModule, "ignoring filter value", map[string]interface{}{"error": err.Error()})
	}
	e.filter = next
	e.page.Index = 0
	e.recompute()
}

func (e *Engine[T]) SetPage(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.page = query.PageState{Index: index, Size: e.page.Size}.Clamp(len(e.filtered))
}

func (e *Engine[T]) SetPageSize(size int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if size <= 0 {
		e.logger.Warn(logModule, "ignoring page size", map[string]interface{}{"size": size})
		return
	}
	e.page = query.PageState{Size: size}.Clamp(len(e.filtered))
}

// ToggleSelect flips the selection of id and reports whether it is now
// selected. Ids outside the dataset are ignored.
func (e *Engine[T]) ToggleSelect(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.contains(id) {
		return false
	}
	return e.selection.Toggle(id)
}

// SelectAll adds the visible page or every matching record to the selection.
func (e *Engine[T]) SelectAll(scope Scope) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var source []T
	switch scope {
	case ScopeVisible:
		source = query.Paginate(e.filtered, e.page)
	case ScopeAllMatching:
		source = e.filtered
	default:
		err := &query.ValidationError{Field: "selection scope", Value: string(scope), Reason: "expected visible or all_matching"}
		e.logger.Warn(logModule, "ignoring select all", map[string]interface{}{"error": err.Error()})
		return
	}
	for _, r := range source {
		e.selection.Add(r.GetId())
	}
}

func (e *Engine[T]) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selection.Clear()
}

func (e *Engine[T]) IsSelected(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.selection.Has(id)
}

// Selection returns the selected ids in lexical order.
func (e *Engine[T]) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.selection.Ids()
}

// VisiblePage returns the current page after filter, sort and paginate.
func (e *Engine[T]) VisiblePage() []T {
	e.mu.Lock()
	defer e.mu.Unlock()

	return query.Paginate(e.filtered, e.page)
}

// Matching returns every record passing the filter, in sort order.
func (e *Engine[T]) Matching() []T {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]T(nil), e.filtered...)
}

func (e *Engine[T]) Snapshot() View[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	filter := e.filter
	filter.Tags = e.filter.Tags.Clone()
	return View[T]{
		DatasetKey:    e.datasetKey,
		Items:         query.Paginate(e.filtered, e.page),
		PageIndex:     e.page.Index,
		PageSize:      e.page.Size,
		PageCount:     query.PageCount(len(e.filtered), e.page.Size),
		FilteredCount: len(e.filtered),
		TotalCount:    len(e.records),
		Sort:          e.sort,
		Filter:        filter,
		SelectedIds:   e.selection.Ids(),
	}
}

// recompute runs the fixed pipeline: filter, then sort. Pagination is
// applied on read.
func (e *Engine[T]) recompute() {
	matched := query.Filter(e.records, e.filter.Predicate(e.cfg.SearchField))
	e.filtered = query.SortStable(matched, e.sort)
	e.page = e.page.Clamp(len(e.filtered))
}

func (e *Engine[T]) contains(id string) bool {
	for _, r := range e.records {
		if r.GetId() == id {
			return true
		}
	}
	return false
}
