package bulk_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/internal/repository/mocks"
	"portfolio-cms-be/pkg/bulk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func publishPatch() contract.Patch {
	s := entity.ContentStatusPublished
	return contract.Patch{Status: &s}
}

func TestRun_PartialFailure(t *testing.T) {
	repo := mocks.NewContentRepository[*entity.Post](entity.ContentKindPost)
	patch := publishPatch()
	for _, id := range []string{"r1", "r2", "r4"} {
		repo.On("Mutate", mock.Anything, id, patch).Return(nil).Once()
	}
	repo.On("Mutate", mock.Anything, "r3", patch).
		Return(contract.NewMutationError("r3", errors.New("version conflict"))).Once()

	c := bulk.NewCoordinator(bulk.Config{Concurrency: 4})
	res := c.Run(context.Background(), []string{"r1", "r2", "r3", "r4"}, func(ctx context.Context, id string) error {
		return repo.Mutate(ctx, id, patch)
	})

	assert.Equal(t, []string{"r1", "r2", "r4"}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "r3", res.Failed[0].Id)
	assert.Equal(t, "version conflict", res.Failed[0].Reason)
	assert.Equal(t, 4, res.Total())
	repo.AssertExpectations(t)
}

func TestRun_AllFail(t *testing.T) {
	c := bulk.NewCoordinator(bulk.Config{})
	ids := []string{"a", "b", "c"}
	res := c.Run(context.Background(), ids, func(ctx context.Context, id string) error {
		return contract.NewMutationError(id, contract.ErrNotFound)
	})

	assert.Empty(t, res.Succeeded)
	assert.Equal(t, ids, res.FailedIds())
	for _, f := range res.Failed {
		assert.Equal(t, "record not found", f.Reason)
	}
}

func TestRun_EmptyIds(t *testing.T) {
	c := bulk.NewCoordinator(bulk.Config{})
	res := c.Run(context.Background(), nil, func(ctx context.Context, id string) error {
		t.Fatal("action must not run")
		return nil
	})
	assert.Equal(t, 0, res.Total())
	assert.NotNil(t, res.Succeeded)
	assert.NotNil(t, res.Failed)
}

func TestRun_DuplicateIdsRunOnce(t *testing.T) {
	var calls sync.Map
	c := bulk.NewCoordinator(bulk.Config{})
	res := c.Run(context.Background(), []string{"a", "b", "a", "a"}, func(ctx context.Context, id string) error {
		n, _ := calls.LoadOrStore(id, new(int32))
		atomic.AddInt32(n.(*int32), 1)
		return nil
	})

	assert.Equal(t, []string{"a", "b"}, res.Succeeded)
	n, _ := calls.Load("a")
	assert.EqualValues(t, 1, atomic.LoadInt32(n.(*int32)))
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	c := bulk.NewCoordinator(bulk.Config{})
	res := c.Run(context.Background(), []string{"ok", "boom"}, func(ctx context.Context, id string) error {
		if id == "boom" {
			panic("nil map")
		}
		return nil
	})

	assert.Equal(t, []string{"ok"}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "boom", res.Failed[0].Id)
	assert.Contains(t, res.Failed[0].Reason, "panic")
}

func TestRun_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak int32
	c := bulk.NewCoordinator(bulk.Config{Concurrency: 2})
	ids := []string{"1", "2", "3", "4", "5", "6"}
	res := c.Run(context.Background(), ids, func(ctx context.Context, id string) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})

	assert.Len(t, res.Succeeded, len(ids))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestRun_CancelledContextFailsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := bulk.NewCoordinator(bulk.Config{})
	res := c.Run(ctx, []string{"a", "b"}, func(ctx context.Context, id string) error {
		return nil
	})

	assert.Empty(t, res.Succeeded)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, context.Canceled.Error(), res.Failed[0].Reason)
}
