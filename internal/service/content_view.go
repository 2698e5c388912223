package service

import (
	"unicode/utf8"

	"portfolio-cms-be/internal/dto"
	"portfolio-cms-be/internal/entity"
)

const summaryRunes = 240

func toContentItem(rec entity.Discoverable, kind entity.ContentKind, lang entity.Lang) dto.ContentItem {
	item := dto.ContentItem{
		Id:        rec.GetId(),
		Kind:      string(kind),
		Title:     rec.SearchTitle().Resolve(lang),
		Summary:   truncate(rec.SearchBody().Resolve(lang), summaryRunes),
		Status:    string(rec.GetStatus()),
		Tags:      []string{},
		UpdatedAt: rec.GetUpdatedAt(),
	}
	if t, ok := rec.(entity.Tagged); ok && t.GetTags() != nil {
		item.Tags = append(item.Tags, t.GetTags()...)
	}
	if p, ok := rec.(entity.Pinnable); ok {
		item.Pinned = p.IsPinned()
	}
	if v, ok := rec.Field(entity.FieldFeatured); ok {
		item.Featured, _ = v.(bool)
	}
	if p, ok := rec.(entity.Publishable); ok {
		item.PublishedAt = p.GetPublishedAt()
	}
	if l, ok := rec.(entity.Leveled); ok {
		item.Level = string(l.GetLevel())
	}
	if t, ok := rec.(entity.Taxonomic); ok {
		item.GoalId = t.GetGoalId()
		item.OutcomeId = t.GetOutcomeId()
	}
	return item
}

func toContentItems(recs []entity.Discoverable, kind entity.ContentKind, lang entity.Lang) []dto.ContentItem {
	out := make([]dto.ContentItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, toContentItem(r, kind, lang))
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
