package contract

import (
	"context"
	"fmt"

	"portfolio-cms-be/internal/entity"
)

type widened[T entity.Record, U entity.Record] struct {
	repo ContentRepository[T]
}

// Widen exposes a typed repository through a wider record interface U,
// e.g. ContentRepository[*entity.Post] as ContentRepository[entity.Record].
// Every T must implement U; an item that does not fails the List.
func Widen[T entity.Record, U entity.Record](repo ContentRepository[T]) ContentRepository[U] {
	return &widened[T, U]{repo: repo}
}

func (w *widened[T, U]) Kind() entity.ContentKind {
	return w.repo.Kind()
}

func (w *widened[T, U]) List(ctx context.Context, q ListQuery) (*Page[U], error) {
	page, err := w.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]U, 0, len(page.Items))
	for _, it := range page.Items {
		u, ok := any(it).(U)
		if !ok {
			return nil, &FetchError{Kind: w.repo.Kind(), Op: "list", Err: fmt.Errorf("record %s has unexpected type %T", it.GetId(), it)}
		}
		items = append(items, u)
	}
	return &Page[U]{Items: items, Total: page.Total, NextCursor: page.NextCursor, HasMore: page.HasMore}, nil
}

func (w *widened[T, U]) Mutate(ctx context.Context, id string, patch Patch) error {
	return w.repo.Mutate(ctx, id, patch)
}
