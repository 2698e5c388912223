package contract

import (
	"errors"
	"testing"
	"time"

	"portfolio-cms-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedPost(id string, pinned bool, published *time.Time) *entity.Post {
	return &entity.Post{Base: entity.Base{Id: id, Pinned: pinned, PublishedAt: published}}
}

func TestFeedCompare(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	pinnedOld := feedPost("z", true, &older)
	newA := feedPost("a", false, &newer)
	newB := feedPost("b", false, &newer)
	draft := feedPost("c", false, nil)

	assert.Equal(t, -1, FeedCompare(pinnedOld, newA), "pinned first")
	assert.Equal(t, -1, FeedCompare(newA, draft), "recent first, unpublished last")
	assert.Equal(t, -1, FeedCompare(newA, newB), "id breaks timestamp ties")
	assert.Equal(t, 0, FeedCompare(newA, newA))
}

func TestCursor_RoundTrip(t *testing.T) {
	at := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	c := CursorOf(feedPost("p-1", true, &at))

	decoded, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c.Id, decoded.Id)
	assert.True(t, decoded.Pinned)
	assert.True(t, decoded.PublishedAt.Equal(at))

	none, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = DecodeCursor("!!not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestPatch(t *testing.T) {
	assert.ErrorIs(t, Patch{}.Validate(), ErrInvalidPatch)

	bad := entity.ContentStatus("archived")
	assert.ErrorIs(t, Patch{Status: &bad}.Validate(), ErrInvalidPatch)

	published := entity.ContentStatusPublished
	assert.NoError(t, Patch{Status: &published}.Validate())

	p := Patch{AddTags: []string{"go", "ai"}, RemoveTags: []string{"old"}}
	assert.Equal(t, []string{"ai", "go"}, p.ApplyTags([]string{"old", "ai"}))
}

func TestNewMutationError(t *testing.T) {
	err := NewMutationError("r3", ErrNotFound)
	assert.Equal(t, "record not found", err.Reason)
	assert.ErrorIs(t, err, ErrNotFound)

	wrapped := NewMutationError("r4", errors.New("deadlock detected"))
	assert.Equal(t, "deadlock detected", wrapped.Reason)

	same := NewMutationError("r4", wrapped)
	assert.Same(t, wrapped, same)
}
