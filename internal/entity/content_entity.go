package entity

import (
	"strings"
	"time"
)

type ContentStatus string
type ContentKind string
type Lang string
type Level string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"

	ContentKindPost    ContentKind = "post"
	ContentKindInsight ContentKind = "insight"
	ContentKindSeries  ContentKind = "series"
	ContentKindPhoto   ContentKind = "photo"

	LangVi Lang = "vi"
	LangEn Lang = "en"

	// DefaultLang is canonical: every record carries Vietnamese text,
	// English is optional and falls back to Vietnamese.
	DefaultLang = LangVi

	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Sortable field names shared by every content kind.
const (
	FieldId          = "id"
	FieldTitle       = "title"
	FieldStatus      = "status"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
	FieldPublishedAt = "published_at"
	FieldPinned      = "pinned"
	FieldFeatured    = "featured"
	FieldLevel       = "level"
)

func (k ContentKind) Valid() bool {
	switch k {
	case ContentKindPost, ContentKindInsight, ContentKindSeries, ContentKindPhoto:
		return true
	}
	return false
}

func (s ContentStatus) Valid() bool {
	return s == ContentStatusDraft || s == ContentStatusPublished
}

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

func ParseLang(raw string) Lang {
	if Lang(strings.ToLower(strings.TrimSpace(raw))) == LangEn {
		return LangEn
	}
	return DefaultLang
}

// Localized holds the bilingual variants of one text field.
type Localized struct {
	Vi string
	En string
}

// Raw returns the text stored for lang without any fallback.
func (l Localized) Raw(lang Lang) string {
	if lang == LangEn {
		return l.En
	}
	return l.Vi
}

// Resolve returns the text for lang, falling back to the default
// language when lang has no populated value.
func (l Localized) Resolve(lang Lang) string {
	if v := l.Raw(lang); strings.TrimSpace(v) != "" {
		return v
	}
	return l.Raw(DefaultLang)
}

// Record is the minimal shape every content item exposes to the query
// engines. Records are immutable from the engines' point of view.
type Record interface {
	GetId() string
	GetStatus() ContentStatus
	GetUpdatedAt() time.Time
	// Field returns the value of a named sortable field. ok is false when
	// the record does not carry the field or the value is unset.
	Field(name string) (value any, ok bool)
}

type Tagged interface {
	GetTags() []string
}

type Pinnable interface {
	IsPinned() bool
}

type Publishable interface {
	GetPublishedAt() *time.Time
}

type Taxonomic interface {
	GetGoalId() *string
	GetOutcomeId() *string
}

type Leveled interface {
	GetLevel() Level
}

// Searchable exposes the bilingual text the search matcher looks at.
type Searchable interface {
	SearchTitle() Localized
	SearchBody() Localized
}

// Discoverable is a record the public feed can filter and rank.
type Discoverable interface {
	Record
	Searchable
}

// Base carries the fields shared by all content kinds.
type Base struct {
	Id          string
	Status      ContentStatus
	Title       Localized
	Tags        []string
	Pinned      bool
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

func (b *Base) GetId() string                 { return b.Id }
func (b *Base) GetStatus() ContentStatus      { return b.Status }
func (b *Base) GetUpdatedAt() time.Time       { return b.UpdatedAt }
func (b *Base) GetTags() []string             { return b.Tags }
func (b *Base) IsPinned() bool                { return b.Pinned }
func (b *Base) GetPublishedAt() *time.Time    { return b.PublishedAt }
func (b *Base) SearchTitle() Localized        { return b.Title }
func (b *Base) HasTag(tag string) bool        { return containsString(b.Tags, tag) }
func (b *Base) IsPublished() bool             { return b.Status == ContentStatusPublished }
func (b *Base) ContentTitle(lang Lang) string { return b.Title.Resolve(lang) }

func (b *Base) baseField(name string) (any, bool) {
	switch name {
	case FieldId:
		return b.Id, b.Id != ""
	case FieldTitle:
		return b.Title.Vi, b.Title.Vi != ""
	case FieldStatus:
		return string(b.Status), b.Status != ""
	case FieldCreatedAt:
		return b.CreatedAt, !b.CreatedAt.IsZero()
	case FieldUpdatedAt:
		return b.UpdatedAt, !b.UpdatedAt.IsZero()
	case FieldPublishedAt:
		if b.PublishedAt == nil {
			return nil, false
		}
		return *b.PublishedAt, true
	case FieldPinned:
		return b.Pinned, true
	case FieldFeatured:
		return b.Featured, true
	}
	return nil, false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// GetBase exposes the shared fields to repositories applying patches.
func (b *Base) GetBase() *Base { return b }

func (b *Base) clone() Base {
	out := *b
	out.Tags = append([]string(nil), b.Tags...)
	if b.PublishedAt != nil {
		t := *b.PublishedAt
		out.PublishedAt = &t
	}
	return out
}
