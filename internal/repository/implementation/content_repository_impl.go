package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/mapper"
	"portfolio-cms-be/internal/model"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type baseCarrier interface {
	GetBase() *entity.Base
}

// ContentRepositoryImpl serves one content table. Taxonomy filters only
// apply to tables that carry goal, outcome and level columns.
type ContentRepositoryImpl[T entity.Record, M any] struct {
	db       *gorm.DB
	kind     entity.ContentKind
	mapper   mapper.ContentMapper[T, M]
	taxonomy bool
	now      func() time.Time
}

func NewPostRepository(db *gorm.DB) contract.ContentRepository[*entity.Post] {
	return &ContentRepositoryImpl[*entity.Post, model.Post]{
		db:       db,
		kind:     entity.ContentKindPost,
		mapper:   mapper.NewPostMapper(),
		taxonomy: true,
		now:      time.Now,
	}
}

func NewInsightRepository(db *gorm.DB) contract.ContentRepository[*entity.Insight] {
	return &ContentRepositoryImpl[*entity.Insight, model.Insight]{
		db:     db,
		kind:   entity.ContentKindInsight,
		mapper: mapper.NewInsightMapper(),
		now:    time.Now,
	}
}

func NewSeriesRepository(db *gorm.DB) contract.ContentRepository[*entity.Series] {
	return &ContentRepositoryImpl[*entity.Series, model.Series]{
		db:     db,
		kind:   entity.ContentKindSeries,
		mapper: mapper.NewSeriesMapper(),
		now:    time.Now,
	}
}

func NewPhotoRepository(db *gorm.DB) contract.ContentRepository[*entity.Photo] {
	return &ContentRepositoryImpl[*entity.Photo, model.Photo]{
		db:     db,
		kind:   entity.ContentKindPhoto,
		mapper: mapper.NewPhotoMapper(),
		now:    time.Now,
	}
}

func (r *ContentRepositoryImpl[T, M]) Kind() entity.ContentKind {
	return r.kind
}

func (r *ContentRepositoryImpl[T, M]) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContentRepositoryImpl[T, M]) filterSpecs(q contract.ListQuery) []specification.Specification {
	specs := []specification.Specification{}
	if q.Status != "" {
		specs = append(specs, specification.ByStatus{Status: string(q.Status)})
	}
	if len(q.Tags) > 0 {
		specs = append(specs, specification.HasAnyTag{Tags: q.Tags})
	}
	if q.FreeText != "" {
		specs = append(specs, specification.TitleSearch{Query: q.FreeText})
	}
	if r.taxonomy {
		if q.GoalId != "" {
			specs = append(specs, specification.ByGoal{GoalId: q.GoalId})
		}
		if q.OutcomeId != "" {
			specs = append(specs, specification.ByOutcome{OutcomeId: q.OutcomeId})
		}
		if q.Level != "" {
			specs = append(specs, specification.ByLevel{Level: string(q.Level)})
		}
	} else if q.GoalId != "" || q.OutcomeId != "" || q.Level != "" {
		specs = append(specs, matchNothing{})
	}
	return specs
}

func (r *ContentRepositoryImpl[T, M]) List(ctx context.Context, q contract.ListQuery) (*contract.Page[T], error) {
	ctx, span := otel.Tracer("portfolio-cms-be/repository").Start(ctx, "repository.List")
	defer span.End()
	span.SetAttributes(
		attribute.String("content.kind", string(r.kind)),
		attribute.Bool("content.feed", q.Feed),
	)

	filters := r.filterSpecs(q)

	var zero M
	var total int64
	countQuery := r.applySpecifications(r.db.WithContext(ctx).Model(&zero), filters...)
	if err := countQuery.Count(&total).Error; err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &contract.FetchError{Kind: r.kind, Op: "count", Err: err}
	}

	specs := append([]specification.Specification{}, filters...)
	limit := q.Limit
	if q.Feed {
		specs = append(specs, specification.FeedOrder{})
		if q.After != nil {
			specs = append(specs, specification.CursorAfter{Cursor: *q.After})
		}
		if limit > 0 {
			// one extra row tells whether another page exists
			specs = append(specs, specification.Pagination{Limit: limit + 1})
		}
	} else {
		if q.Sort.Field != "" {
			specs = append(specs, specification.SafeOrderBy{Key: q.Sort.Field, Desc: q.Sort.Desc})
		}
		if limit > 0 || q.Offset > 0 {
			specs = append(specs, specification.Pagination{Limit: limit, Offset: q.Offset})
		}
	}

	var models []*M
	if err := r.applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &contract.FetchError{Kind: r.kind, Op: "list", Err: err}
	}

	items := make([]T, 0, len(models))
	for _, m := range models {
		items = append(items, r.mapper.ToEntity(m))
	}

	page := &contract.Page[T]{Total: total}
	if q.Feed {
		if limit > 0 && len(items) > limit {
			items = items[:limit]
			page.HasMore = true
			page.NextCursor = contract.CursorOf(items[len(items)-1]).Encode()
		}
	} else {
		page.HasMore = int64(q.Offset+len(items)) < total
	}
	page.Items = items
	return page, nil
}

func (r *ContentRepositoryImpl[T, M]) Mutate(ctx context.Context, id string, patch contract.Patch) error {
	if err := patch.Validate(); err != nil {
		return contract.NewMutationError(id, err)
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return contract.NewMutationError(id, contract.ErrNotFound)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m M
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		byId := specification.ByID{ID: uid}
		if err := byId.Apply(locked).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contract.ErrNotFound
			}
			return err
		}

		rec, ok := any(r.mapper.ToEntity(&m)).(baseCarrier)
		if !ok {
			return fmt.Errorf("%s record cannot be patched", r.kind)
		}
		b := rec.GetBase()
		patch.ApplyTo(b, r.now().UTC())

		tags := b.Tags
		if tags == nil {
			tags = []string{}
		}
		return tx.Model(&m).Updates(map[string]interface{}{
			"status":       string(b.Status),
			"pinned":       b.Pinned,
			"featured":     b.Featured,
			"tags":         datatypes.JSONSlice[string](tags),
			"published_at": b.PublishedAt,
			"updated_at":   b.UpdatedAt,
		}).Error
	})
	if err != nil {
		return mutationError(id, err)
	}
	return nil
}

// Create inserts rec, leaving an existing row with the same id untouched.
// It reports whether a row was written.
func (r *ContentRepositoryImpl[T, M]) Create(ctx context.Context, rec T) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(r.mapper.ToModel(rec))
	return res.RowsAffected > 0, res.Error
}

func mutationError(id string, err error) *contract.MutationError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		reason := "database error " + pgErr.Code
		switch pgErr.Code {
		case "40001", "40P01":
			reason = "conflicting update, retry"
		case "23505", "23503", "23514":
			reason = "constraint violation: " + pgErr.ConstraintName
		}
		return &contract.MutationError{Id: id, Reason: reason, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &contract.MutationError{Id: id, Reason: "timed out", Err: err}
	}
	return contract.NewMutationError(id, err)
}

type matchNothing struct{}

func (matchNothing) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}
