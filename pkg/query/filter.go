package query

import (
	"slices"
	"sort"
	"strings"

	"portfolio-cms-be/internal/entity"
)

// FilterAll is the explicit "no constraint" value accepted for status,
// level and taxonomy.
const FilterAll = "all"

// TagSet is a set of normalized tags. An empty set means no tag filter.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		if n := normalizeTag(t); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func (s TagSet) Has(tag string) bool {
	_, ok := s[normalizeTag(tag)]
	return ok
}

// Intersects reports whether any of tags is in the set.
func (s TagSet) Intersects(tags []string) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Toggle adds tag if absent and removes it otherwise.
func (s TagSet) Toggle(tag string) TagSet {
	out := s.Clone()
	n := normalizeTag(tag)
	if n == "" {
		return out
	}
	if _, ok := out[n]; ok {
		delete(out, n)
	} else {
		out[n] = struct{}{}
	}
	return out
}

func (s TagSet) Clone() TagSet {
	out := make(TagSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// FilterState is the admin grid filter. Zero-valued fields carry no
// constraint.
type FilterState struct {
	Status     entity.ContentStatus
	Level      entity.Level
	Tags       TagSet
	TaxonomyId string
	FreeText   string
}

// FilterPatch is a partial FilterState; nil fields leave the current value.
type FilterPatch struct {
	Status     *string
	Level      *string
	Tags       *[]string
	TaxonomyId *string
	FreeText   *string
}

// Merge applies p onto f. Malformed values clear their category and are
// reported as ValidationErrors.
func (f FilterState) Merge(p FilterPatch) (FilterState, []error) {
	var errs []error
	out := f
	out.Tags = f.Tags.Clone()

	if p.Status != nil {
		raw := strings.ToLower(strings.TrimSpace(*p.Status))
		switch {
		case raw == "" || raw == FilterAll:
			out.Status = ""
		case entity.ContentStatus(raw).Valid():
			out.Status = entity.ContentStatus(raw)
		default:
			out.Status = ""
			errs = append(errs, &ValidationError{Field: "status", Value: *p.Status, Reason: "expected draft, published or all"})
		}
	}
	if p.Level != nil {
		raw := strings.ToLower(strings.TrimSpace(*p.Level))
		switch {
		case raw == "" || raw == FilterAll:
			out.Level = ""
		case entity.Level(raw).Valid():
			out.Level = entity.Level(raw)
		default:
			out.Level = ""
			errs = append(errs, &ValidationError{Field: "level", Value: *p.Level, Reason: "unknown level"})
		}
	}
	if p.Tags != nil {
		out.Tags = NewTagSet(*p.Tags...)
	}
	if p.TaxonomyId != nil {
		raw := strings.TrimSpace(*p.TaxonomyId)
		if strings.EqualFold(raw, FilterAll) {
			raw = ""
		}
		out.TaxonomyId = raw
	}
	if p.FreeText != nil {
		out.FreeText = *p.FreeText
	}
	return out, errs
}

// Predicate is a boolean test over a record.
type Predicate[T entity.Record] func(T) bool

// And composes predicates; an empty list matches everything.
func And[T entity.Record](preds ...Predicate[T]) Predicate[T] {
	return func(r T) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func StatusIs[T entity.Record](status entity.ContentStatus) Predicate[T] {
	return func(r T) bool {
		return r.GetStatus() == status
	}
}

func LevelIs[T entity.Record](level entity.Level) Predicate[T] {
	return func(r T) bool {
		l, ok := any(r).(entity.Leveled)
		return ok && l.GetLevel() == level
	}
}

// HasAnyTag matches records sharing at least one tag with set. Records
// without tags never match a non-empty set.
func HasAnyTag[T entity.Record](set TagSet) Predicate[T] {
	return func(r T) bool {
		if len(set) == 0 {
			return true
		}
		t, ok := any(r).(entity.Tagged)
		return ok && set.Intersects(t.GetTags())
	}
}

// InTaxonomy matches records whose goal or outcome reference equals id.
func InTaxonomy[T entity.Record](id string) Predicate[T] {
	return func(r T) bool {
		t, ok := any(r).(entity.Taxonomic)
		if !ok {
			return false
		}
		return equalsRef(t.GetGoalId(), id) || equalsRef(t.GetOutcomeId(), id)
	}
}

// TextContains is a case-insensitive substring test against one field.
func TextContains[T entity.Record](text string, field func(T) string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(text))
	return func(r T) bool {
		return strings.Contains(strings.ToLower(field(r)), needle)
	}
}

// Predicate builds the AND of every active category. field supplies the
// text searched by FreeText.
func (f FilterState) Predicate(field func(entity.Record) string) Predicate[entity.Record] {
	var preds []Predicate[entity.Record]
	if f.Status != "" {
		preds = append(preds, StatusIs[entity.Record](f.Status))
	}
	if f.Level != "" {
		preds = append(preds, LevelIs[entity.Record](f.Level))
	}
	if len(f.Tags) > 0 {
		preds = append(preds, HasAnyTag[entity.Record](f.Tags))
	}
	if f.TaxonomyId != "" {
		preds = append(preds, InTaxonomy[entity.Record](f.TaxonomyId))
	}
	if strings.TrimSpace(f.FreeText) != "" && field != nil {
		preds = append(preds, TextContains(f.FreeText, field))
	}
	return And(preds...)
}

// Matches reports whether r satisfies every active category of f.
func Matches(r entity.Record, f FilterState, field func(entity.Record) string) bool {
	return f.Predicate(field)(r)
}

// Filter returns the records matching pred, preserving input order.
func Filter[T entity.Record](records []T, pred Predicate[entity.Record]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return slices.Clip(out)
}

// TitleField is the default admin free-text field.
func TitleField(r entity.Record) string {
	if s, ok := r.(entity.Searchable); ok {
		return s.SearchTitle().Vi
	}
	if v, ok := r.Field(entity.FieldTitle); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func equalsRef(ref *string, id string) bool {
	return ref != nil && *ref == id
}
