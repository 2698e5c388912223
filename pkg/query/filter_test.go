package query

import (
	"testing"

	"portfolio-cms-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(id string, status entity.ContentStatus, tags ...string) *entity.Post {
	p := post(id, "title "+id, day)
	p.Status = status
	p.Tags = tags
	return p
}

func strPtr(s string) *string { return &s }

func filterIds(records []*entity.Post, f FilterState) []string {
	return ids(Filter(records, f.Predicate(TitleField)))
}

func TestHasAnyTag_OrSemantics(t *testing.T) {
	records := []*entity.Post{
		tagged("1", entity.ContentStatusDraft, "ai"),
		tagged("2", entity.ContentStatusDraft, "ai", "go"),
		tagged("3", entity.ContentStatusDraft, "career"),
		tagged("4", entity.ContentStatusDraft, "career"),
		tagged("5", entity.ContentStatusDraft),
	}

	f := FilterState{Tags: NewTagSet("ai", "career")}
	assert.Equal(t, []string{"1", "2", "3", "4"}, filterIds(records, f))

	for _, r := range records {
		set := NewTagSet("ai", "career")
		want := set.Intersects(r.Tags)
		assert.Equal(t, want, HasAnyTag[*entity.Post](set)(r), "record %s", r.Id)
	}

	assert.False(t, HasAnyTag[*entity.Post](NewTagSet("ai"))(records[4]), "untagged never matches a non-empty set")
}

func TestHasAnyTag_EmptySetIsNoFilter(t *testing.T) {
	records := []*entity.Post{
		tagged("1", entity.ContentStatusDraft, "ai"),
		tagged("2", entity.ContentStatusDraft),
	}
	assert.Equal(t, []string{"1", "2"}, filterIds(records, FilterState{Tags: NewTagSet()}))
	assert.Equal(t, []string{"1", "2"}, filterIds(records, FilterState{}))
}

func TestTagFilter_AllAvailableTagsVersusNoFilter(t *testing.T) {
	records := []*entity.Post{
		tagged("1", entity.ContentStatusDraft, "ai"),
		tagged("2", entity.ContentStatusDraft, "career"),
		tagged("3", entity.ContentStatusDraft),
	}

	all := filterIds(records, FilterState{Tags: NewTagSet("ai", "career")})
	none := filterIds(records, FilterState{})

	// Selecting every tag is still a tag filter: untagged records drop out.
	assert.Equal(t, []string{"1", "2"}, all)
	assert.Equal(t, []string{"1", "2", "3"}, none)

	allTagged := records[:2]
	assert.Equal(t,
		filterIds(allTagged, FilterState{}),
		filterIds(allTagged, FilterState{Tags: NewTagSet("ai", "career")}),
		"equivalent when every record carries a tag",
	)
}

func TestFilter_CategoriesCommute(t *testing.T) {
	records := []*entity.Post{
		tagged("1", entity.ContentStatusPublished, "ai"),
		tagged("2", entity.ContentStatusDraft, "ai"),
		tagged("3", entity.ContentStatusPublished, "career"),
		tagged("4", entity.ContentStatusPublished),
	}
	status := StatusIs[entity.Record](entity.ContentStatusPublished)
	tags := HasAnyTag[entity.Record](NewTagSet("ai"))

	statusThenTags := Filter(Filter(records, status), tags)
	tagsThenStatus := Filter(Filter(records, tags), status)
	combined := Filter(records, And(status, tags))

	assert.Equal(t, ids(statusThenTags), ids(tagsThenStatus))
	assert.Equal(t, ids(statusThenTags), ids(combined))
	assert.Equal(t, []string{"1"}, ids(combined))
}

func TestFilterState_FreeTextCaseInsensitive(t *testing.T) {
	records := []*entity.Post{post("1", "Learning Go", day), post("2", "Python notes", day)}
	assert.Equal(t, []string{"1"}, filterIds(records, FilterState{FreeText: "  GO "}))
	assert.Equal(t, []string{"1", "2"}, filterIds(records, FilterState{FreeText: "   "}))
}

func TestFilterState_LevelAndTaxonomy(t *testing.T) {
	goal := "goal-1"
	outcome := "outcome-9"
	a := post("a", "a", day)
	a.Level = entity.LevelBeginner
	a.GoalId = &goal
	b := post("b", "b", day)
	b.Level = entity.LevelAdvanced
	b.OutcomeId = &outcome
	insight := &entity.Insight{Base: entity.Base{Id: "i", Status: entity.ContentStatusDraft}}

	records := []entity.Record{a, b, insight}

	byLevel := Filter(records, FilterState{Level: entity.LevelBeginner}.Predicate(TitleField))
	assert.Equal(t, []string{"a"}, ids(byLevel))

	byGoal := Filter(records, FilterState{TaxonomyId: goal}.Predicate(TitleField))
	assert.Equal(t, []string{"a"}, ids(byGoal))

	byOutcome := Filter(records, FilterState{TaxonomyId: outcome}.Predicate(TitleField))
	assert.Equal(t, []string{"b"}, ids(byOutcome))
}

func TestFilterState_Merge(t *testing.T) {
	start := FilterState{Status: entity.ContentStatusDraft, Tags: NewTagSet("ai")}

	next, errs := start.Merge(FilterPatch{FreeText: strPtr("go")})
	require.Empty(t, errs)
	assert.Equal(t, entity.ContentStatusDraft, next.Status)
	assert.True(t, next.Tags.Has("ai"))
	assert.Equal(t, "go", next.FreeText)

	next, errs = next.Merge(FilterPatch{Status: strPtr("all"), Tags: &[]string{}})
	require.Empty(t, errs)
	assert.Equal(t, entity.ContentStatus(""), next.Status)
	assert.Empty(t, next.Tags)

	next, errs = next.Merge(FilterPatch{Status: strPtr("archived"), Level: strPtr("guru"), TaxonomyId: strPtr("ALL")})
	require.Len(t, errs, 2)
	var verr *ValidationError
	assert.ErrorAs(t, errs[0], &verr)
	assert.Equal(t, entity.ContentStatus(""), next.Status)
	assert.Equal(t, entity.Level(""), next.Level)
	assert.Equal(t, "", next.TaxonomyId)

	assert.True(t, start.Tags.Has("ai"), "merge must not mutate the receiver's tag set")
}

func TestTagSet_ToggleAndNormalize(t *testing.T) {
	set := NewTagSet(" AI ", "", "go")
	assert.Equal(t, []string{"ai", "go"}, set.Sorted())

	toggled := set.Toggle("Go")
	assert.Equal(t, []string{"ai"}, toggled.Sorted())
	assert.Equal(t, []string{"ai", "go"}, set.Sorted())
	assert.Equal(t, []string{"ai", "rust"}, toggled.Toggle("rust").Sorted())
}
