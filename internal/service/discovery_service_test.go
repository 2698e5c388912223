package service_test

import (
	"context"
	"testing"
	"time"

	"portfolio-cms-be/internal/dto"
	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/internal/service"
	"portfolio-cms-be/internal/testutil"
	"portfolio-cms-be/pkg/discovery"
	"portfolio-cms-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscoveryService(f *fixture, clk *testutil.FakeClock, pageSize int) service.IDiscoveryService {
	return service.NewDiscoveryService(f.factory, service.DiscoveryConfig{
		PageSize: pageSize,
		Debounce: discovery.DefaultDebounce,
		Clock:    clk,
	}, f.log)
}

func TestDiscovery_OpenShowsPublishedFeed(t *testing.T) {
	svc := newDiscoveryService(newFixture(), testutil.NewFakeClock(), 9)

	view, err := svc.Open(context.Background(), &dto.OpenDiscoveryRequest{Kind: "post"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p2", "p1"}, itemIds(view.Items))
	assert.Equal(t, "idle", view.State)
	assert.False(t, view.HasMore)
}

func TestDiscovery_InlineFiltersApplyAtOnceTextIsDebounced(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewFakeClock()
	svc := newDiscoveryService(newFixture(), clk, 9)

	view, err := svc.Open(ctx, &dto.OpenDiscoveryRequest{Kind: "post"})
	require.NoError(t, err)
	id := view.SessionId

	view, err = svc.Search(ctx, &dto.SearchRequest{SessionId: id, Query: "#AI"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ai"}, view.Tags)
	assert.Equal(t, []string{"p1"}, itemIds(view.Items))

	view, err = svc.Search(ctx, &dto.SearchRequest{SessionId: id, Query: "hoc may"})
	require.NoError(t, err)
	assert.Equal(t, "debouncing", view.State)
	assert.Empty(t, view.Tags, "inline tag dropped from the query is cleared")
	assert.Equal(t, "", view.Query)

	clk.Advance(discovery.DefaultDebounce)

	view, err = svc.Show(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "idle", view.State)
	assert.Equal(t, "hoc may", view.Query)
	assert.Equal(t, []string{"p1"}, itemIds(view.Items))
}

func TestDiscovery_SubmitFlushes(t *testing.T) {
	ctx := context.Background()
	svc := newDiscoveryService(newFixture(), testutil.NewFakeClock(), 9)

	view, err := svc.Open(ctx, &dto.OpenDiscoveryRequest{Kind: "post", Lang: "en"})
	require.NoError(t, err)

	view, err = svc.Search(ctx, &dto.SearchRequest{SessionId: view.SessionId, Query: "interviews", Submit: true})
	require.NoError(t, err)
	assert.Equal(t, "idle", view.State)
	assert.Equal(t, []string{"p2"}, itemIds(view.Items))
	assert.Equal(t, "Technical interviews", view.Items[0].Title)
}

func TestDiscovery_LoadMore(t *testing.T) {
	ctx := context.Background()
	svc := newDiscoveryService(newFixture(), testutil.NewFakeClock(), 2)

	view, err := svc.Open(ctx, &dto.OpenDiscoveryRequest{Kind: "post"})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Loaded)
	assert.True(t, view.HasMore)

	view, err = svc.LoadMore(ctx, view.SessionId)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Loaded)
	assert.False(t, view.HasMore)
	assert.Equal(t, []string{"p4", "p2", "p1"}, itemIds(view.Items))
}

func TestDiscovery_TaxonomyAndToggleTag(t *testing.T) {
	ctx := context.Background()
	svc := newDiscoveryService(newFixture(), testutil.NewFakeClock(), 9)

	view, err := svc.Open(ctx, &dto.OpenDiscoveryRequest{Kind: "post"})
	require.NoError(t, err)

	view, err = svc.ToggleTag(ctx, &dto.ToggleTagRequest{SessionId: view.SessionId, Tag: "career"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, itemIds(view.Items))

	view, err = svc.SetTaxonomy(ctx, &dto.TaxonomyRequest{SessionId: view.SessionId, Level: "advanced"})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, "advanced", view.Taxonomy.Level)
}

func TestDiscovery_RefreshAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newDiscoveryService(f, testutil.NewFakeClock(), 9)
	inv := service.NewInvalidationService(f.pubSub, f.pages, svc, f.log)

	view, err := svc.Open(ctx, &dto.OpenDiscoveryRequest{Kind: "post"})
	require.NoError(t, err)
	require.Contains(t, itemIds(view.Items), "p2")

	// another instance unpublishes p2 behind this instance's cache
	draft := entity.ContentStatusDraft
	require.NoError(t, f.posts.Mutate(ctx, "p2", contract.Patch{Status: &draft}))

	evt := events.BulkUpdated{Kind: "post", Action: "unpublish", Succeeded: []string{"p2"}}
	require.NoError(t, inv.HandleEvent(ctx, events.BaseEvent{
		Type:       events.TypeContentBulkUpdated,
		Data:       map[string]interface{}{"kind": evt.Kind, "action": evt.Action, "succeeded": []interface{}{"p2"}},
		OccurredAt: time.Now(),
	}))

	view, err = svc.Show(ctx, view.SessionId)
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p1"}, itemIds(view.Items))
}

func TestDiscovery_UnknownSession(t *testing.T) {
	svc := newDiscoveryService(newFixture(), testutil.NewFakeClock(), 9)
	_, err := svc.LoadMore(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}
