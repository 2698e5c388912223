package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want SearchFilters
	}{
		{
			name: "plain text",
			raw:  "học máy",
			want: SearchFilters{Text: "học máy"},
		},
		{
			name: "hash tags",
			raw:  "#AI agents #career",
			want: SearchFilters{Tags: []string{"ai", "career"}, Text: "agents"},
		},
		{
			name: "slash filters",
			raw:  "/tag:go /level:Beginner /goal:G-1 /outcome:o2 channels",
			want: SearchFilters{Tags: []string{"go"}, Level: "beginner", GoalId: "G-1", OutcomeId: "o2", Text: "channels"},
		},
		{
			name: "lone hash is text",
			raw:  "# title",
			want: SearchFilters{Text: "# title"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.raw))
		})
	}
	assert.True(t, ParseQuery("/level:advanced").HasTaxonomy())
	assert.False(t, ParseQuery("#go").HasTaxonomy())
}
