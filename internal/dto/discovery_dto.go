package dto

type OpenDiscoveryRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=post insight series photo"`
	Lang     string `json:"lang" validate:"omitempty,oneof=vi en"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=50"`
}

// SearchRequest sets the query. Inline #tag and /level: style filters are
// applied immediately; the remaining text is debounced unless Submit is set.
type SearchRequest struct {
	SessionId string
	Query     string `json:"query" validate:"max=200"`
	Submit    bool   `json:"submit"`
}

type TaxonomyRequest struct {
	SessionId string
	GoalId    string `json:"goal_id"`
	OutcomeId string `json:"outcome_id"`
	Level     string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type TagsRequest struct {
	SessionId string
	Tags      []string `json:"tags"`
}

type ToggleTagRequest struct {
	SessionId string
	Tag       string `json:"tag" validate:"required"`
}

type TaxonomyView struct {
	GoalId    string `json:"goal_id"`
	OutcomeId string `json:"outcome_id"`
	Level     string `json:"level"`
}

type DiscoveryResponse struct {
	SessionId string        `json:"session_id"`
	Kind      string        `json:"kind"`
	Lang      string        `json:"lang"`
	State     string        `json:"state"`
	Seq       uint64        `json:"seq"`
	Query     string        `json:"query"`
	Tags      []string      `json:"tags"`
	Taxonomy  TaxonomyView  `json:"taxonomy"`
	Items     []ContentItem `json:"items"`
	Loaded    int           `json:"loaded"`
	HasMore   bool          `json:"has_more"`
}
