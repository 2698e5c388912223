package unitofwork

import (
	"context"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/cache"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db     *gorm.DB
	pages  cache.PageCache
	logger logger.ILogger
}

// NewRepositoryFactory serves repositories backed by db. A non-nil pages
// cache fronts every List.
func NewRepositoryFactory(db *gorm.DB, pages cache.PageCache, l logger.ILogger) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:     db,
		pages:  pages,
		logger: l,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &repositories{
		posts:    withCache(implementation.NewPostRepository(f.db), f.pages, f.logger),
		insights: withCache(implementation.NewInsightRepository(f.db), f.pages, f.logger),
		series:   withCache(implementation.NewSeriesRepository(f.db), f.pages, f.logger),
		photos:   withCache(implementation.NewPhotoRepository(f.db), f.pages, f.logger),
	}
}

// StaticRepositoryFactory hands out the same repositories for every unit of
// work. It backs in-memory runs and tests.
type StaticRepositoryFactory struct {
	uow *repositories
}

func NewStaticRepositoryFactory(
	posts contract.ContentRepository[*entity.Post],
	insights contract.ContentRepository[*entity.Insight],
	series contract.ContentRepository[*entity.Series],
	photos contract.ContentRepository[*entity.Photo],
	pages cache.PageCache,
	l logger.ILogger,
) *StaticRepositoryFactory {
	return &StaticRepositoryFactory{uow: &repositories{
		posts:    withCache(posts, pages, l),
		insights: withCache(insights, pages, l),
		series:   withCache(series, pages, l),
		photos:   withCache(photos, pages, l),
	}}
}

func (f *StaticRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return f.uow
}

func withCache[T entity.Record](repo contract.ContentRepository[T], pages cache.PageCache, l logger.ILogger) contract.ContentRepository[T] {
	if pages == nil {
		return repo
	}
	return cache.NewCachedRepository(repo, pages, l)
}
