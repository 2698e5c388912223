package contract

import (
	"context"

	"portfolio-cms-be/internal/entity"
)

// ContentRepository is the persistence boundary the query engines consume.
// List must be idempotent for identical queries within a session.
type ContentRepository[T entity.Record] interface {
	Kind() entity.ContentKind
	List(ctx context.Context, q ListQuery) (*Page[T], error)
	// Mutate applies patch to one record. Failures are *MutationError.
	Mutate(ctx context.Context, id string, patch Patch) error
}

type SortSpec struct {
	Field string
	Desc  bool
}

// ListQuery selects records. With Feed set, results use the feed order
// (pinned desc, published_at desc, id asc) and After as keyset cursor;
// Sort and Offset are ignored.
type ListQuery struct {
	Status    entity.ContentStatus
	Tags      []string
	GoalId    string
	OutcomeId string
	Level     entity.Level
	FreeText  string

	Sort   SortSpec
	Limit  int
	Offset int

	Feed  bool
	After *Cursor
}

// Page is one slice of records. NextCursor is empty once the feed is
// exhausted.
type Page[T any] struct {
	Items      []T
	Total      int64
	NextCursor string
	HasMore    bool
}
