package implementation

import (
	"context"
	"fmt"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/model"
	"portfolio-cms-be/internal/seed"

	"gorm.io/gorm"
)

// SeedCatalog inserts every record of c that is not stored yet and
// returns how many rows were written. Series go first so posts can
// reference them.
func SeedCatalog(ctx context.Context, db *gorm.DB, c seed.Catalog) (int, error) {
	written := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []func() (int, error){
			func() (int, error) {
				return seedAll(ctx, NewSeriesRepository(tx).(*ContentRepositoryImpl[*entity.Series, model.Series]), c.Series)
			},
			func() (int, error) {
				return seedAll(ctx, NewPostRepository(tx).(*ContentRepositoryImpl[*entity.Post, model.Post]), c.Posts)
			},
			func() (int, error) {
				return seedAll(ctx, NewInsightRepository(tx).(*ContentRepositoryImpl[*entity.Insight, model.Insight]), c.Insights)
			},
			func() (int, error) {
				return seedAll(ctx, NewPhotoRepository(tx).(*ContentRepositoryImpl[*entity.Photo, model.Photo]), c.Photos)
			},
		}
		for _, step := range steps {
			n, err := step()
			if err != nil {
				return err
			}
			written += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func seedAll[T entity.Record, M any](ctx context.Context, repo *ContentRepositoryImpl[T, M], records []T) (int, error) {
	n := 0
	for _, rec := range records {
		created, err := repo.Create(ctx, rec)
		if err != nil {
			return n, fmt.Errorf("seed %s %s: %w", repo.kind, rec.GetId(), err)
		}
		if created {
			n++
		}
	}
	return n, nil
}
