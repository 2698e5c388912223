package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"portfolio-cms-be/internal/dto"
	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/service"
	"portfolio-cms-be/pkg/bulk"
	"portfolio-cms-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(f *fixture) service.IAdminListService {
	return service.NewAdminListService(
		f.factory,
		bulk.NewCoordinator(bulk.Config{Concurrency: 2, Logger: f.log}),
		service.NewPublisherService(f.pubSub, nil, f.log),
		service.AdminListConfig{PageSize: 10},
		f.log,
	)
}

func itemIds(items []dto.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Id
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestAdminList_OpenFilterSortSelect(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(newFixture())

	view, err := svc.Open(ctx, &dto.OpenAdminListRequest{Kind: "post"})
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalCount)
	assert.Equal(t, 10, view.PageSize)
	assert.Len(t, view.Items, 4)

	tags := []string{"ai"}
	view, err = svc.Filter(ctx, &dto.FilterRequest{SessionId: view.SessionId, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, 2, view.FilteredCount)

	view, err = svc.SelectAll(ctx, &dto.SelectAllRequest{SessionId: view.SessionId, Scope: "all_matching"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, view.SelectedIds)

	view, err = svc.Sort(ctx, &dto.SortRequest{SessionId: view.SessionId, Key: "title", Direction: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1"}, itemIds(view.Items))

	view, err = svc.Filter(ctx, &dto.FilterRequest{SessionId: view.SessionId, Status: strPtr("published")})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, itemIds(view.Items))
	assert.Equal(t, []string{"p1", "p3"}, view.SelectedIds, "filtering never clears the selection")
}

func TestAdminList_BulkPublishPartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.posts.InjectMutationError("p2", errors.New("row locked"))
	svc := newAdminService(f)

	received, err := f.pubSub.Subscribe(ctx, service.TopicContentBulkUpdated)
	require.NoError(t, err)

	view, err := svc.Open(ctx, &dto.OpenAdminListRequest{Kind: "post"})
	require.NoError(t, err)
	for _, id := range []string{"p2", "p3"} {
		_, err = svc.ToggleSelect(ctx, &dto.SelectRequest{SessionId: view.SessionId, Id: id})
		require.NoError(t, err)
	}

	res, err := svc.RunBulkAction(ctx, &dto.BulkActionRequest{SessionId: view.SessionId, Action: service.ActionPin})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "p2", res.Failed[0].Id)
	assert.Equal(t, "row locked", res.Failed[0].Reason)
	assert.Equal(t, []string{"p2", "p3"}, res.List.SelectedIds, "refetch keeps the selection")

	p3, _ := f.posts.Get("p3")
	assert.True(t, p3.Pinned)

	select {
	case msg := <-received:
		var evt events.BulkUpdated
		require.NoError(t, json.Unmarshal(msg.Payload, &evt))
		assert.Equal(t, "post", evt.Kind)
		assert.Equal(t, []string{"p3"}, evt.Succeeded)
		assert.Equal(t, []string{"p2"}, evt.Failed)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no bulk update event")
	}
}

func TestAdminList_BulkUsesExplicitIds(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newAdminService(f)

	view, err := svc.Open(ctx, &dto.OpenAdminListRequest{Kind: "post"})
	require.NoError(t, err)

	res, err := svc.RunBulkAction(ctx, &dto.BulkActionRequest{
		SessionId: view.SessionId,
		Action:    service.ActionAddTag,
		Tag:       "Featured",
		Ids:       []string{"p1", "missing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "record not found", res.Failed[0].Reason)

	p1, _ := f.posts.Get("p1")
	assert.Equal(t, []string{"ai", "featured"}, p1.Tags)
}

func TestAdminList_SwitchKindClearsSelection(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(newFixture())

	view, err := svc.Open(ctx, &dto.OpenAdminListRequest{Kind: "post"})
	require.NoError(t, err)
	_, err = svc.ToggleSelect(ctx, &dto.SelectRequest{SessionId: view.SessionId, Id: "p1"})
	require.NoError(t, err)

	view, err = svc.SwitchKind(ctx, &dto.SwitchKindRequest{SessionId: view.SessionId, Kind: "photo"})
	require.NoError(t, err)
	assert.Equal(t, "photo", view.Kind)
	assert.Empty(t, view.SelectedIds)
	assert.Equal(t, []string{"ph1"}, itemIds(view.Items))
}

func TestAdminList_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(newFixture())

	_, err := svc.Open(ctx, &dto.OpenAdminListRequest{Kind: "video"})
	assert.ErrorIs(t, err, service.ErrUnknownContentKind)

	_, err = svc.Show(ctx, "nope")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	view, err := svc.Open(ctx, &dto.OpenAdminListRequest{Kind: "post"})
	require.NoError(t, err)

	_, err = svc.RunBulkAction(ctx, &dto.BulkActionRequest{SessionId: view.SessionId, Action: "archive"})
	assert.ErrorIs(t, err, service.ErrUnknownBulkAction)

	_, err = svc.RunBulkAction(ctx, &dto.BulkActionRequest{SessionId: view.SessionId, Action: service.ActionPublish})
	assert.ErrorIs(t, err, service.ErrNothingSelected)

	require.NoError(t, svc.Close(ctx, view.SessionId))
	assert.ErrorIs(t, svc.Close(ctx, view.SessionId), service.ErrSessionNotFound)
}

func TestAdminList_FetchErrorSurfaces(t *testing.T) {
	f := newFixture()
	f.posts.InjectListError(errors.New("connection refused"))
	svc := newAdminService(f)

	_, err := svc.Open(context.Background(), &dto.OpenAdminListRequest{Kind: string(entity.ContentKindPost)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
