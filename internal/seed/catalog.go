// Package seed holds the sample catalog loaded by cmd/seed and by the
// in-memory fallback when no database is configured.
package seed

import (
	"time"

	"portfolio-cms-be/internal/entity"

	"github.com/google/uuid"
)

// namespace keeps generated ids stable so reseeding is idempotent.
var namespace = uuid.MustParse("7d4b1f0e-3c1a-4f5e-9a61-2b8f8e2c4d10")

type Catalog struct {
	Posts    []*entity.Post
	Insights []*entity.Insight
	Series   []*entity.Series
	Photos   []*entity.Photo
}

func (c Catalog) Count() int {
	return len(c.Posts) + len(c.Insights) + len(c.Series) + len(c.Photos)
}

// Id derives the stable id used for a seeded record.
func Id(kind entity.ContentKind, slug string) string {
	return uuid.NewSHA1(namespace, []byte(string(kind)+"/"+slug)).String()
}

func strPtr(s string) *string { return &s }

func base(kind entity.ContentKind, slug string, now time.Time, age time.Duration, status entity.ContentStatus, vi, en string, tags ...string) entity.Base {
	created := now.Add(-age)
	b := entity.Base{
		Id:        Id(kind, slug),
		Status:    status,
		Title:     entity.Localized{Vi: vi, En: en},
		Tags:      tags,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if status == entity.ContentStatusPublished {
		b.PublishedAt = &created
	}
	return b
}

// Sample builds the catalog relative to now so feed ordering looks fresh.
func Sample(now time.Time) Catalog {
	day := 24 * time.Hour
	pub, draft := entity.ContentStatusPublished, entity.ContentStatusDraft

	seriesId := Id(entity.ContentKindSeries, "go-from-zero")

	posts := []*entity.Post{
		{
			Base:    base(entity.ContentKindPost, "chien-luoc-dau-tu", now, 1*day, pub, "Chiến lược đầu tư dài hạn", "Long-term investing strategy", "finance", "investing"),
			Slug:    "chien-luoc-dau-tu",
			Excerpt: entity.Localized{Vi: "Cách xây dựng danh mục bền vững", En: "Building a resilient portfolio"},
			Body:    entity.Localized{Vi: "Đa dạng hoá tài sản và kỷ luật giải ngân định kỳ.", En: "Diversify assets and invest on a fixed schedule."},
			GoalId:  strPtr("wealth"), OutcomeId: strPtr("passive-income"), Level: entity.LevelIntermediate,
		},
		{
			Base:    base(entity.ContentKindPost, "go-concurrency-basics", now, 3*day, pub, "Lập trình đồng thời trong Go", "Concurrency in Go", "go", "backend"),
			Slug:    "go-concurrency-basics",
			Excerpt: entity.Localized{Vi: "Goroutine và channel", En: "Goroutines and channels"},
			Body:    entity.Localized{Vi: "Dùng errgroup để giới hạn số tác vụ song song.", En: "Use errgroup to bound parallel work."},
			GoalId:  strPtr("career"), OutcomeId: strPtr("backend-skills"), Level: entity.LevelBeginner,
			SeriesId: &seriesId,
		},
		{
			Base:   base(entity.ContentKindPost, "go-generics", now, 5*day, pub, "Generic trong Go", "", "go"),
			Slug:   "go-generics",
			Body:   entity.Localized{Vi: "Tham số kiểu giúp tái sử dụng cấu trúc dữ liệu."},
			GoalId: strPtr("career"), Level: entity.LevelAdvanced,
			SeriesId: &seriesId,
		},
		{
			Base:    base(entity.ContentKindPost, "suc-khoe-tinh-than", now, 8*day, pub, "Sức khỏe tinh thần khi làm việc từ xa", "Mental health while working remotely", "health"),
			Slug:    "suc-khoe-tinh-than",
			Excerpt: entity.Localized{Vi: "Giữ nhịp sinh hoạt", En: "Keep a routine"},
			GoalId:  strPtr("wellbeing"), Level: entity.LevelBeginner,
		},
		{
			Base:   base(entity.ContentKindPost, "ban-nhap-thue", now, 2*day, draft, "Thuế thu nhập cá nhân", "Personal income tax", "finance"),
			Slug:   "ban-nhap-thue",
			GoalId: strPtr("wealth"), Level: entity.LevelIntermediate,
		},
	}
	posts[0].Pinned = true
	posts[1].Featured = true

	insights := []*entity.Insight{
		{
			Base:      base(entity.ContentKindInsight, "lai-kep", now, 2*day, pub, "Sức mạnh của lãi kép", "The power of compounding", "finance"),
			Body:      entity.Localized{Vi: "Bắt đầu sớm quan trọng hơn số tiền lớn.", En: "Starting early beats starting big."},
			SourceUrl: strPtr("https://example.com/compounding"),
		},
		{
			Base: base(entity.ContentKindInsight, "doc-sach", now, 6*day, pub, "Đọc sách mỗi ngày", "Read every day", "habits"),
			Body: entity.Localized{Vi: "Mười trang mỗi tối."},
		},
	}

	series := []*entity.Series{
		{
			Base:        base(entity.ContentKindSeries, "go-from-zero", now, 10*day, pub, "Go từ con số không", "Go from zero", "go"),
			Slug:        "go-from-zero",
			Description: entity.Localized{Vi: "Chuỗi bài học Go cho người mới.", En: "A Go course for newcomers."},
			PostIds:     []string{posts[1].Id, posts[2].Id},
		},
	}

	photos := []*entity.Photo{
		{
			Base:     base(entity.ContentKindPhoto, "ha-giang", now, 4*day, pub, "Đèo Mã Pì Lèng", "Ma Pi Leng pass", "travel", "vietnam"),
			Caption:  entity.Localized{Vi: "Hà Giang mùa lúa chín", En: "Ha Giang at harvest"},
			ImageUrl: "https://cdn.example.com/photos/ha-giang.jpg",
			Album:    "north",
		},
		{
			Base:     base(entity.ContentKindPhoto, "hoi-an", now, 9*day, pub, "Phố cổ Hội An", "Hoi An old town", "travel"),
			ImageUrl: "https://cdn.example.com/photos/hoi-an.jpg",
			Album:    "central",
		},
	}

	return Catalog{Posts: posts, Insights: insights, Series: series, Photos: photos}
}
