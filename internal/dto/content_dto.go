package dto

import "time"

// ContentItem is the list view of any content kind. Text fields are
// resolved to the requested language.
type ContentItem struct {
	Id          string     `json:"id"`
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
	Pinned      bool       `json:"pinned"`
	Featured    bool       `json:"featured"`
	Level       string     `json:"level,omitempty"`
	GoalId      *string    `json:"goal_id,omitempty"`
	OutcomeId   *string    `json:"outcome_id,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
