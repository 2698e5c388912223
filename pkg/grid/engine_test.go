package grid

import (
	"fmt"
	"testing"
	"time"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/pkg/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

func newPost(id, title string, tags ...string) *entity.Post {
	return &entity.Post{Base: entity.Base{
		Id:        id,
		Title:     entity.Localized{Vi: title},
		Status:    entity.ContentStatusDraft,
		Tags:      tags,
		UpdatedAt: base,
	}}
}

func idsOf(records []*entity.Post) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Id
	}
	return out
}

func strPtr(s string) *string { return &s }

func scenarioDataset() []*entity.Post {
	return []*entity.Post{
		newPost("r1", "Prompting", "ai"),
		newPost("r2", "Agents", "ai"),
		newPost("r3", "Interviews", "career"),
		newPost("r4", "Promotions", "career"),
		newPost("r5", "Untagged musings"),
	}
}

func TestEngine_TagFilterAndSelectAll(t *testing.T) {
	e := New[*entity.Post](Config{PageSize: 10})
	e.SetDataset("post", scenarioDataset())

	e.SetFilter(query.FilterPatch{Tags: &[]string{"ai", "career"}})
	matching := e.Matching()
	require.Len(t, matching, 4)
	assert.NotContains(t, idsOf(matching), "r5")

	e.SelectAll(ScopeAllMatching)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, e.Selection())
}

func TestEngine_SelectionSurvivesSortAndFilter(t *testing.T) {
	e := New[*entity.Post](Config{PageSize: 2})
	e.SetDataset("post", scenarioDataset())

	for _, id := range []string{"r1", "r2", "r3"} {
		require.True(t, e.ToggleSelect(id))
	}

	e.SetSort(entity.FieldTitle, "desc")
	assert.Equal(t, []string{"r1", "r2", "r3"}, e.Selection())

	e.SetFilter(query.FilterPatch{Tags: &[]string{"career"}})
	assert.Equal(t, []string{"r1", "r2", "r3"}, e.Selection(), "filtering must not clear selection")

	e.SetFilter(query.FilterPatch{Tags: &[]string{}})
	assert.Equal(t, []string{"r1", "r2", "r3"}, e.Selection())
}

func TestEngine_DatasetSwitchClearsSelection(t *testing.T) {
	e := New[entity.Record](Config{})
	records := make([]entity.Record, 0, 5)
	for _, p := range scenarioDataset() {
		records = append(records, p)
	}
	e.SetDataset("post", records)
	e.ToggleSelect("r1")
	e.ToggleSelect("r2")

	// Refetch of the same dataset keeps the selection but drops vanished ids.
	e.SetDataset("post", records[1:])
	assert.Equal(t, []string{"r2"}, e.Selection())

	e.SetDataset("insight", []entity.Record{
		&entity.Insight{Base: entity.Base{Id: "r2", Status: entity.ContentStatusDraft}},
	})
	assert.Empty(t, e.Selection(), "a different dataset never inherits selection, even on id collisions")
}

func TestEngine_PipelineOrderFilterSortPaginate(t *testing.T) {
	e := New[*entity.Post](Config{PageSize: 2})
	e.SetDataset("post", scenarioDataset())

	e.SetFilter(query.FilterPatch{Tags: &[]string{"ai", "career"}})
	e.SetSort(entity.FieldTitle, "asc")

	// Agents, Interviews | Promotions, Prompting. Untagged never reaches a page.
	assert.Equal(t, []string{"r2", "r3"}, idsOf(e.VisiblePage()))
	e.SetPage(1)
	assert.Equal(t, []string{"r4", "r1"}, idsOf(e.VisiblePage()))

	view := e.Snapshot()
	assert.Equal(t, 4, view.FilteredCount)
	assert.Equal(t, 5, view.TotalCount)
	assert.Equal(t, 2, view.PageCount)
	assert.Equal(t, 1, view.PageIndex)
}

func TestEngine_FilterResetsPageAndClampsIndex(t *testing.T) {
	e := New[*entity.Post](Config{PageSize: 2})
	e.SetDataset("post", scenarioDataset())
	e.SetPage(2)
	assert.Equal(t, []string{"r5"}, idsOf(e.VisiblePage()))

	e.SetFilter(query.FilterPatch{FreeText: strPtr("prom")})
	assert.Equal(t, []string{"r1", "r4"}, idsOf(e.VisiblePage()))
	assert.Equal(t, 0, e.Snapshot().PageIndex)

	e.SetPage(7)
	assert.Equal(t, 0, e.Snapshot().PageIndex)
}

func TestEngine_MalformedSortDegradesToNoSort(t *testing.T) {
	e := New[*entity.Post](Config{SortableFields: []string{entity.FieldTitle}})
	e.SetDataset("post", scenarioDataset())

	e.SetSort(entity.FieldTitle, "asc")
	assert.Equal(t, "r2", e.VisiblePage()[0].Id)

	e.SetSort("password", "asc")
	assert.False(t, e.Snapshot().Sort.Active())
	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5"}, idsOf(e.VisiblePage()))

	e.SetSort(entity.FieldTitle, "upwards")
	assert.False(t, e.Snapshot().Sort.Active())
}

func TestEngine_MalformedFilterDegrades(t *testing.T) {
	e := New[*entity.Post](Config{})
	e.SetDataset("post", scenarioDataset())

	assert.NotPanics(t, func() {
		e.SetFilter(query.FilterPatch{Status: strPtr("archived")})
	})
	assert.Len(t, e.VisiblePage(), 5)
}

func TestEngine_SelectVisibleOnlyAddsCurrentPage(t *testing.T) {
	e := New[*entity.Post](Config{PageSize: 2})
	e.SetDataset("post", scenarioDataset())
	e.SetPage(1)

	e.SelectAll(ScopeVisible)
	assert.Equal(t, []string{"r3", "r4"}, e.Selection())

	e.SelectAll(Scope("everything"))
	assert.Equal(t, []string{"r3", "r4"}, e.Selection())

	e.ClearSelection()
	assert.Empty(t, e.Selection())
}

func TestEngine_ToggleUnknownIdIgnored(t *testing.T) {
	e := New[*entity.Post](Config{})
	e.SetDataset("post", scenarioDataset())

	assert.False(t, e.ToggleSelect("nope"))
	assert.Empty(t, e.Selection())
	assert.True(t, e.ToggleSelect("r1"))
	assert.False(t, e.ToggleSelect("r1"))
	assert.False(t, e.IsSelected("r1"))
}

func TestEngine_StableSortWithTies(t *testing.T) {
	records := make([]*entity.Post, 0, 6)
	for i := 0; i < 6; i++ {
		records = append(records, newPost(fmt.Sprintf("p%d", i), "tie"))
	}
	e := New[*entity.Post](Config{PageSize: 6})
	e.SetDataset("post", records)

	e.SetSort(entity.FieldTitle, "desc")
	first := idsOf(e.VisiblePage())
	e.SetSort(entity.FieldTitle, "desc")
	assert.Equal(t, first, idsOf(e.VisiblePage()))
	assert.Equal(t, idsOf(records), first)
}
