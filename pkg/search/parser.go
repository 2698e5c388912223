package search

import (
	"strings"
)

// SearchFilters holds the inline filters extracted from a query and the
// remaining free text.
type SearchFilters struct {
	Tags      []string
	Level     string
	GoalId    string
	OutcomeId string
	Text      string
}

func (f SearchFilters) HasTaxonomy() bool {
	return f.Level != "" || f.GoalId != "" || f.OutcomeId != ""
}

// ParseQuery extracts inline filters from the raw query string.
// Supported:
// #<tag> OR /tag:<tag> -> add tag
// /level:<level> -> level filter
// /goal:<id> -> goal filter
// /outcome:<id> -> outcome filter
// <text> -> remaining text is the search query
func ParseQuery(raw string) SearchFilters {
	filters := SearchFilters{}
	var cleanParts []string

	for _, part := range strings.Fields(raw) {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(part, "#") && len(part) > 1:
			filters.Tags = append(filters.Tags, strings.TrimPrefix(lowerPart, "#"))
		case strings.HasPrefix(lowerPart, "/tag:"):
			if tag := strings.TrimPrefix(lowerPart, "/tag:"); tag != "" {
				filters.Tags = append(filters.Tags, tag)
			}
		case strings.HasPrefix(lowerPart, "/level:"):
			filters.Level = strings.TrimPrefix(lowerPart, "/level:")
		case strings.HasPrefix(lowerPart, "/goal:"):
			// ids keep their case
			filters.GoalId = part[len("/goal:"):]
		case strings.HasPrefix(lowerPart, "/outcome:"):
			filters.OutcomeId = part[len("/outcome:"):]
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	filters.Text = strings.Join(cleanParts, " ")
	return filters
}
