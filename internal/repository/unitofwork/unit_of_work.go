package unitofwork

import (
	"context"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/contract"
)

// RepositoryFactory opens a UnitOfWork per request.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

// UnitOfWork hands out the content repositories for one request. Mutations
// are single-record and independent, so no transaction spans repositories.
type UnitOfWork interface {
	PostRepository() contract.ContentRepository[*entity.Post]
	InsightRepository() contract.ContentRepository[*entity.Insight]
	SeriesRepository() contract.ContentRepository[*entity.Series]
	PhotoRepository() contract.ContentRepository[*entity.Photo]

	// Content returns the repository for kind behind the shared
	// Discoverable interface.
	Content(kind entity.ContentKind) (contract.ContentRepository[entity.Discoverable], error)
}

type repositories struct {
	posts    contract.ContentRepository[*entity.Post]
	insights contract.ContentRepository[*entity.Insight]
	series   contract.ContentRepository[*entity.Series]
	photos   contract.ContentRepository[*entity.Photo]
}

func (u *repositories) PostRepository() contract.ContentRepository[*entity.Post] {
	return u.posts
}

func (u *repositories) InsightRepository() contract.ContentRepository[*entity.Insight] {
	return u.insights
}

func (u *repositories) SeriesRepository() contract.ContentRepository[*entity.Series] {
	return u.series
}

func (u *repositories) PhotoRepository() contract.ContentRepository[*entity.Photo] {
	return u.photos
}

func (u *repositories) Content(kind entity.ContentKind) (contract.ContentRepository[entity.Discoverable], error) {
	switch kind {
	case entity.ContentKindPost:
		return contract.Widen[*entity.Post, entity.Discoverable](u.posts), nil
	case entity.ContentKindInsight:
		return contract.Widen[*entity.Insight, entity.Discoverable](u.insights), nil
	case entity.ContentKindSeries:
		return contract.Widen[*entity.Series, entity.Discoverable](u.series), nil
	case entity.ContentKindPhoto:
		return contract.Widen[*entity.Photo, entity.Discoverable](u.photos), nil
	}
	return nil, contract.ErrUnknownContentKind
}
