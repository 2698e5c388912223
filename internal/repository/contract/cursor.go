package contract

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"portfolio-cms-be/internal/entity"
)

// Cursor is the keyset position of a record in the feed order
// (pinned desc, published_at desc, id asc). The id tie-break makes the
// order total, so page merges never skip or repeat a record.
type Cursor struct {
	Pinned      bool      `json:"p"`
	PublishedAt time.Time `json:"t"`
	Id          string    `json:"i"`
}

func CursorOf(r entity.Record) Cursor {
	c := Cursor{Id: r.GetId()}
	if p, ok := r.(entity.Pinnable); ok {
		c.Pinned = p.IsPinned()
	}
	if p, ok := r.(entity.Publishable); ok && p.GetPublishedAt() != nil {
		c.PublishedAt = p.GetPublishedAt().UTC()
	}
	return c
}

// Compare orders two cursors in feed order.
func (c Cursor) Compare(o Cursor) int {
	if c.Pinned != o.Pinned {
		if c.Pinned {
			return -1
		}
		return 1
	}
	if !c.PublishedAt.Equal(o.PublishedAt) {
		if c.PublishedAt.After(o.PublishedAt) {
			return -1
		}
		return 1
	}
	return strings.Compare(c.Id, o.Id)
}

// FeedCompare orders records in feed order.
func FeedCompare(a, b entity.Record) int {
	return CursorOf(a).Compare(CursorOf(b))
}

func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if c.Id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidCursor)
	}
	return &c, nil
}
