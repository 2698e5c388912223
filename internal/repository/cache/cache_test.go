package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/cache"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func post(id string) *entity.Post {
	return &entity.Post{Base: entity.Base{Id: id, Status: entity.ContentStatusPublished, Title: entity.Localized{Vi: id}}}
}

func TestCachedRepository_ListHitsCacheUntilMutate(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewContentRepository[*entity.Post](entity.ContentKindPost)
	q := contract.ListQuery{Status: entity.ContentStatusPublished, Limit: 10}
	next.On("List", mock.Anything, q).
		Return(&contract.Page[*entity.Post]{Items: []*entity.Post{post("a")}, Total: 1}, nil).Twice()
	next.On("Mutate", mock.Anything, "a", mock.Anything).Return(nil).Once()

	pages := cache.NewMemoryPageCache(time.Minute)
	repo := cache.NewCachedRepository[*entity.Post](next, pages, nil)

	first, err := repo.List(ctx, q)
	require.NoError(t, err)
	second, err := repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, first.Items[0].Id, second.Items[0].Id)
	assert.Equal(t, 1, pages.Len())

	pinned := true
	require.NoError(t, repo.Mutate(ctx, "a", contract.Patch{Pinned: &pinned}))
	assert.Equal(t, 0, pages.Len())

	_, err = repo.List(ctx, q)
	require.NoError(t, err)
	next.AssertExpectations(t)
}

func TestCachedRepository_MutateDuringListDoesNotLeaveStalePage(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewContentRepository[*entity.Post](entity.ContentKindPost)
	q := contract.ListQuery{Status: entity.ContentStatusPublished, Limit: 10}

	started := make(chan struct{})
	release := make(chan struct{})
	next.On("List", mock.Anything, q).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&contract.Page[*entity.Post]{Items: []*entity.Post{post("before")}, Total: 1}, nil).Once()
	next.On("List", mock.Anything, q).
		Return(&contract.Page[*entity.Post]{Items: []*entity.Post{post("after")}, Total: 1}, nil).Once()
	next.On("Mutate", mock.Anything, "before", mock.Anything).Return(nil).Once()

	pages := cache.NewMemoryPageCache(time.Minute)
	repo := cache.NewCachedRepository[*entity.Post](next, pages, nil)

	done := make(chan *contract.Page[*entity.Post])
	go func() {
		page, err := repo.List(ctx, q)
		assert.NoError(t, err)
		done <- page
	}()

	<-started
	pinned := true
	require.NoError(t, repo.Mutate(ctx, "before", contract.Patch{Pinned: &pinned}))
	close(release)

	inflight := <-done
	require.NotNil(t, inflight)
	assert.Equal(t, "before", inflight.Items[0].Id)
	assert.Equal(t, 0, pages.Len())

	fresh, err := repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "after", fresh.Items[0].Id)
	next.AssertExpectations(t)
}

func TestMemoryPageCache_InvalidateBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	pages := cache.NewMemoryPageCache(time.Minute)

	gen, err := pages.Generation(ctx, "post:")
	require.NoError(t, err)
	require.NoError(t, cache.InvalidateKind(ctx, pages, entity.ContentKindPost))

	next, err := pages.Generation(ctx, "post:")
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
	other, err := pages.Generation(ctx, "photo:")
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestCachedRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewContentRepository[*entity.Post](entity.ContentKindPost)
	next.On("List", mock.Anything, mock.Anything).
		Return(nil, &contract.FetchError{Kind: entity.ContentKindPost, Op: "list", Err: assert.AnError})

	pages := cache.NewMemoryPageCache(time.Minute)
	repo := cache.NewCachedRepository[*entity.Post](next, pages, nil)

	_, err := repo.List(ctx, contract.ListQuery{})
	require.Error(t, err)
	assert.Equal(t, 0, pages.Len())
}

func TestMemoryPageCache_InvalidateKindLeavesOtherKinds(t *testing.T) {
	ctx := context.Background()
	pages := cache.NewMemoryPageCache(time.Minute)
	require.NoError(t, pages.Set(ctx, "post:1", []byte("p")))
	require.NoError(t, pages.Set(ctx, "photo:1", []byte("ph")))

	require.NoError(t, cache.InvalidateKind(ctx, pages, entity.ContentKindPost))

	_, ok, _ := pages.Get(ctx, "post:1")
	assert.False(t, ok)
	v, ok, _ := pages.Get(ctx, "photo:1")
	assert.True(t, ok)
	assert.Equal(t, []byte("ph"), v)
}

func TestRedisPageCache(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	pages, err := cache.New(ctx, cache.DriverRedis, url, time.Minute)
	require.NoError(t, err)

	require.NoError(t, pages.Set(ctx, "series:test", []byte("x")))
	v, ok, err := pages.Get(ctx, "series:test")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("x"), v)

	require.NoError(t, cache.InvalidateKind(ctx, pages, entity.ContentKindSeries))
	_, ok, err = pages.Get(ctx, "series:test")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := cache.New(context.Background(), "memcached", "", 0)
	assert.Error(t, err)
}
