package service_test

import (
	"time"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/cache"
	"portfolio-cms-be/internal/repository/memory"
	"portfolio-cms-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

var t0 = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	posts   *memory.ContentRepository[*entity.Post]
	photos  *memory.ContentRepository[*entity.Photo]
	pages   *cache.MemoryPageCache
	factory unitofwork.RepositoryFactory
	pubSub  *gochannel.GoChannel
	log     logger.ILogger
}

func post(id string, status entity.ContentStatus, at time.Duration, pinned bool, vi, en string, tags ...string) *entity.Post {
	p := &entity.Post{Base: entity.Base{
		Id:        id,
		Status:    status,
		Title:     entity.Localized{Vi: vi, En: en},
		Tags:      tags,
		Pinned:    pinned,
		CreatedAt: t0,
		UpdatedAt: t0,
	}}
	if status == entity.ContentStatusPublished {
		ts := t0.Add(at)
		p.PublishedAt = &ts
	}
	return p
}

func newFixture() *fixture {
	posts := memory.NewContentRepository[*entity.Post](entity.ContentKindPost,
		post("p1", entity.ContentStatusPublished, 0, false, "Học máy cơ bản", "Machine learning basics", "ai"),
		post("p2", entity.ContentStatusPublished, time.Hour, false, "Phỏng vấn kỹ thuật", "Technical interviews", "career"),
		post("p3", entity.ContentStatusDraft, 0, false, "Mạng nơ-ron", "Neural networks", "ai"),
		post("p4", entity.ContentStatusPublished, -time.Hour, true, "Giới thiệu", "About me"),
	)
	photos := memory.NewContentRepository[*entity.Photo](entity.ContentKindPhoto,
		&entity.Photo{Base: entity.Base{Id: "ph1", Status: entity.ContentStatusPublished, Title: entity.Localized{Vi: "Hoàng hôn"}}, ImageUrl: "https://img/1.jpg"},
	)
	insights := memory.NewContentRepository[*entity.Insight](entity.ContentKindInsight)
	series := memory.NewContentRepository[*entity.Series](entity.ContentKindSeries)

	pages := cache.NewMemoryPageCache(time.Minute)
	l := logger.NewNopLogger()
	return &fixture{
		posts:   posts,
		photos:  photos,
		pages:   pages,
		factory: unitofwork.NewStaticRepositoryFactory(posts, insights, series, photos, pages, l),
		pubSub:  gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
		log:     l,
	}
}
