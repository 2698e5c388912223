package specification

import (
	"encoding/json"
	"strings"

	"portfolio-cms-be/internal/repository/contract"

	"gorm.io/gorm"
)

// publishedKey is the feed's published_at with unpublished rows at the
// zero time, matching contract.Cursor.
const publishedKey = "COALESCE(published_at, '0001-01-01 00:00:00+00'::timestamptz)"

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// HasAnyTag keeps rows whose jsonb tags array contains at least one of Tags.
type HasAnyTag struct {
	Tags []string
}

func (s HasAnyTag) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tags) == 0 {
		return db
	}
	parts := make([]string, 0, len(s.Tags))
	args := make([]interface{}, 0, len(s.Tags))
	for _, tag := range s.Tags {
		raw, _ := json.Marshal([]string{tag})
		parts = append(parts, "tags @> ?::jsonb")
		args = append(args, string(raw))
	}
	return db.Where("("+strings.Join(parts, " OR ")+")", args...)
}

type ByGoal struct {
	GoalId string
}

func (s ByGoal) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("goal_id = ?", s.GoalId)
}

type ByOutcome struct {
	OutcomeId string
}

func (s ByOutcome) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("outcome_id = ?", s.OutcomeId)
}

type ByLevel struct {
	Level string
}

func (s ByLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("level = ?", s.Level)
}

// TitleSearch matches either title column, case-insensitive.
type TitleSearch struct {
	Query string
}

func (s TitleSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("(title_vi ILIKE ? OR title_en ILIKE ?)", pattern, pattern)
}

// FeedOrder sorts by pinned desc, published_at desc, id asc.
type FeedOrder struct{}

func (s FeedOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("pinned DESC").Order(publishedKey + " DESC").Order("id::text ASC")
}

// CursorAfter keeps rows strictly after Cursor in feed order.
type CursorAfter struct {
	Cursor contract.Cursor
}

func (s CursorAfter) Apply(db *gorm.DB) *gorm.DB {
	c := s.Cursor
	at := c.PublishedAt.UTC()
	if c.Pinned {
		return db.Where(
			"(pinned = false OR "+publishedKey+" < ? OR ("+publishedKey+" = ? AND id::text > ?))",
			at, at, c.Id,
		)
	}
	return db.Where(
		"(pinned = false AND ("+publishedKey+" < ? OR ("+publishedKey+" = ? AND id::text > ?)))",
		at, at, c.Id,
	)
}

// SortableColumns maps grid sort keys to columns. Keys outside the map
// are rejected so user input never reaches ORDER BY.
var SortableColumns = map[string]string{
	"id":           "id",
	"title":        "title_vi",
	"status":       "status",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"published_at": "published_at",
	"pinned":       "pinned",
	"featured":     "featured",
	"level":        "level",
	"slug":         "slug",
	"album":        "album",
	"taken_at":     "taken_at",
}

// SafeOrderBy orders by a whitelisted key with NULLs last; unknown keys
// are ignored.
type SafeOrderBy struct {
	Key  string
	Desc bool
}

func (s SafeOrderBy) Apply(db *gorm.DB) *gorm.DB {
	col, ok := SortableColumns[s.Key]
	if !ok {
		return db
	}
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(col + " " + direction + " NULLS LAST").Order("id ASC")
}
