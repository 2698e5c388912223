package service

import (
	"fmt"
	"strings"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/contract"
)

const (
	ActionPublish   = "publish"
	ActionUnpublish = "unpublish"
	ActionPin       = "pin"
	ActionUnpin     = "unpin"
	ActionFeature   = "feature"
	ActionUnfeature = "unfeature"
	ActionAddTag    = "add_tag"
	ActionRemoveTag = "remove_tag"
)

// bulkPatch translates a named bulk action into the patch applied to each
// record.
func bulkPatch(action, tag string) (contract.Patch, error) {
	yes, no := true, false
	published, draft := entity.ContentStatusPublished, entity.ContentStatusDraft
	tag = strings.ToLower(strings.TrimSpace(tag))

	switch action {
	case ActionPublish:
		return contract.Patch{Status: &published}, nil
	case ActionUnpublish:
		return contract.Patch{Status: &draft}, nil
	case ActionPin:
		return contract.Patch{Pinned: &yes}, nil
	case ActionUnpin:
		return contract.Patch{Pinned: &no}, nil
	case ActionFeature:
		return contract.Patch{Featured: &yes}, nil
	case ActionUnfeature:
		return contract.Patch{Featured: &no}, nil
	case ActionAddTag, ActionRemoveTag:
		if tag == "" {
			return contract.Patch{}, fmt.Errorf("%w: %s needs a tag", ErrUnknownBulkAction, action)
		}
		if action == ActionAddTag {
			return contract.Patch{AddTags: []string{tag}}, nil
		}
		return contract.Patch{RemoveTags: []string{tag}}, nil
	}
	return contract.Patch{}, fmt.Errorf("%w: %q", ErrUnknownBulkAction, action)
}
