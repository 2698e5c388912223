package contract

import (
	"fmt"
	"time"

	"portfolio-cms-be/internal/entity"
)

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Status     *entity.ContentStatus
	Pinned     *bool
	Featured   *bool
	AddTags    []string
	RemoveTags []string
}

func (p Patch) Empty() bool {
	return p.Status == nil && p.Pinned == nil && p.Featured == nil &&
		len(p.AddTags) == 0 && len(p.RemoveTags) == 0
}

func (p Patch) Validate() error {
	if p.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidPatch)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidPatch, *p.Status)
	}
	return nil
}

// ApplyTags returns tags with AddTags appended (once) and RemoveTags dropped.
func (p Patch) ApplyTags(tags []string) []string {
	out := make([]string, 0, len(tags)+len(p.AddTags))
	seen := make(map[string]struct{}, len(tags))
	remove := make(map[string]struct{}, len(p.RemoveTags))
	for _, t := range p.RemoveTags {
		remove[t] = struct{}{}
	}
	for _, t := range append(append([]string{}, tags...), p.AddTags...) {
		if _, drop := remove[t]; drop {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ApplyTo writes the patch into b. Publishing a record that was never
// published stamps PublishedAt with now.
func (p Patch) ApplyTo(b *entity.Base, now time.Time) {
	if p.Status != nil {
		b.Status = *p.Status
		if b.Status == entity.ContentStatusPublished && b.PublishedAt == nil {
			b.PublishedAt = &now
		}
	}
	if p.Pinned != nil {
		b.Pinned = *p.Pinned
	}
	if p.Featured != nil {
		b.Featured = *p.Featured
	}
	if len(p.AddTags) > 0 || len(p.RemoveTags) > 0 {
		b.Tags = p.ApplyTags(b.Tags)
	}
	b.UpdatedAt = now
}
