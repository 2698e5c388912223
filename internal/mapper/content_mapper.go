package mapper

import (
	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/model"

	"github.com/google/uuid"
)

// ContentMapper converts one content kind between its table row and entity.
type ContentMapper[T entity.Record, M any] interface {
	ToEntity(m *M) T
	ToModel(e T) *M
	Base(m *M) *model.ContentBase
}

func baseToEntity(b *model.ContentBase) entity.Base {
	return entity.Base{
		Id:          b.Id.String(),
		Status:      entity.ContentStatus(b.Status),
		Title:       entity.Localized{Vi: b.TitleVi, En: b.TitleEn},
		Tags:        append([]string(nil), b.Tags...),
		Pinned:      b.Pinned,
		Featured:    b.Featured,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		PublishedAt: b.PublishedAt,
	}
}

func baseToModel(b *entity.Base) model.ContentBase {
	id, err := uuid.Parse(b.Id)
	if err != nil {
		id = uuid.Nil
	}
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.ContentBase{
		Id:          id,
		Status:      string(b.Status),
		TitleVi:     b.Title.Vi,
		TitleEn:     b.Title.En,
		Tags:        tags,
		Pinned:      b.Pinned,
		Featured:    b.Featured,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type PostMapper struct{}

func NewPostMapper() *PostMapper {
	return &PostMapper{}
}

func (m *PostMapper) Base(p *model.Post) *model.ContentBase { return &p.ContentBase }

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}
	var seriesId *string
	if p.SeriesId != nil {
		s := p.SeriesId.String()
		seriesId = &s
	}
	return &entity.Post{
		Base:      baseToEntity(&p.ContentBase),
		Slug:      p.Slug,
		Excerpt:   entity.Localized{Vi: p.ExcerptVi, En: p.ExcerptEn},
		Body:      entity.Localized{Vi: p.BodyVi, En: p.BodyEn},
		GoalId:    p.GoalId,
		OutcomeId: p.OutcomeId,
		Level:     entity.Level(p.Level),
		SeriesId:  seriesId,
	}
}

func (m *PostMapper) ToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}
	var seriesId *uuid.UUID
	if p.SeriesId != nil {
		if id, err := uuid.Parse(*p.SeriesId); err == nil {
			seriesId = &id
		}
	}
	return &model.Post{
		ContentBase: baseToModel(&p.Base),
		Slug:        p.Slug,
		ExcerptVi:   p.Excerpt.Vi,
		ExcerptEn:   p.Excerpt.En,
		BodyVi:      p.Body.Vi,
		BodyEn:      p.Body.En,
		GoalId:      p.GoalId,
		OutcomeId:   p.OutcomeId,
		Level:       string(p.Level),
		SeriesId:    seriesId,
	}
}

type InsightMapper struct{}

func NewInsightMapper() *InsightMapper {
	return &InsightMapper{}
}

func (m *InsightMapper) Base(i *model.Insight) *model.ContentBase { return &i.ContentBase }

func (m *InsightMapper) ToEntity(i *model.Insight) *entity.Insight {
	if i == nil {
		return nil
	}
	return &entity.Insight{
		Base:      baseToEntity(&i.ContentBase),
		Body:      entity.Localized{Vi: i.BodyVi, En: i.BodyEn},
		SourceUrl: i.SourceUrl,
	}
}

func (m *InsightMapper) ToModel(i *entity.Insight) *model.Insight {
	if i == nil {
		return nil
	}
	return &model.Insight{
		ContentBase: baseToModel(&i.Base),
		BodyVi:      i.Body.Vi,
		BodyEn:      i.Body.En,
		SourceUrl:   i.SourceUrl,
	}
}

type SeriesMapper struct{}

func NewSeriesMapper() *SeriesMapper {
	return &SeriesMapper{}
}

func (m *SeriesMapper) Base(s *model.Series) *model.ContentBase { return &s.ContentBase }

func (m *SeriesMapper) ToEntity(s *model.Series) *entity.Series {
	if s == nil {
		return nil
	}
	return &entity.Series{
		Base:        baseToEntity(&s.ContentBase),
		Slug:        s.Slug,
		Description: entity.Localized{Vi: s.DescriptionVi, En: s.DescriptionEn},
		PostIds:     append([]string(nil), s.PostIds...),
	}
}

func (m *SeriesMapper) ToModel(s *entity.Series) *model.Series {
	if s == nil {
		return nil
	}
	postIds := s.PostIds
	if postIds == nil {
		postIds = []string{}
	}
	return &model.Series{
		ContentBase:   baseToModel(&s.Base),
		Slug:          s.Slug,
		DescriptionVi: s.Description.Vi,
		DescriptionEn: s.Description.En,
		PostIds:       postIds,
	}
}

type PhotoMapper struct{}

func NewPhotoMapper() *PhotoMapper {
	return &PhotoMapper{}
}

func (m *PhotoMapper) Base(p *model.Photo) *model.ContentBase { return &p.ContentBase }

func (m *PhotoMapper) ToEntity(p *model.Photo) *entity.Photo {
	if p == nil {
		return nil
	}
	return &entity.Photo{
		Base:     baseToEntity(&p.ContentBase),
		Caption:  entity.Localized{Vi: p.CaptionVi, En: p.CaptionEn},
		ImageUrl: p.ImageUrl,
		Album:    p.Album,
		TakenAt:  p.TakenAt,
	}
}

func (m *PhotoMapper) ToModel(p *entity.Photo) *model.Photo {
	if p == nil {
		return nil
	}
	return &model.Photo{
		ContentBase: baseToModel(&p.Base),
		CaptionVi:   p.Caption.Vi,
		CaptionEn:   p.Caption.En,
		ImageUrl:    p.ImageUrl,
		Album:       p.Album,
		TakenAt:     p.TakenAt,
	}
}
