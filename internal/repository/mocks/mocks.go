package mocks

import (
	"context"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/pkg/events"

	"github.com/stretchr/testify/mock"
)

// ContentRepository is a mock for contract.ContentRepository.
type ContentRepository[T entity.Record] struct {
	mock.Mock
	kind entity.ContentKind
}

func NewContentRepository[T entity.Record](kind entity.ContentKind) *ContentRepository[T] {
	return &ContentRepository[T]{kind: kind}
}

func (m *ContentRepository[T]) Kind() entity.ContentKind {
	return m.kind
}

func (m *ContentRepository[T]) List(ctx context.Context, q contract.ListQuery) (*contract.Page[T], error) {
	args := m.Called(ctx, q)
	if page, ok := args.Get(0).(*contract.Page[T]); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentRepository[T]) Mutate(ctx context.Context, id string, patch contract.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

// EventBus is a mock for the cross-process event publisher.
type EventBus struct {
	mock.Mock
}

func (m *EventBus) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
