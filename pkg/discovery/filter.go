package discovery

import (
	"slices"

	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/pkg/query"
	"portfolio-cms-be/pkg/search"
)

// Taxonomy is an exact-match classification filter. Empty fields carry
// no constraint.
type Taxonomy struct {
	GoalId    string
	OutcomeId string
	Level     entity.Level
}

// Filter is the full discovery filter applied before ranking.
type Filter struct {
	Taxonomy Taxonomy
	Tags     query.TagSet
}

func (f Filter) clone() Filter {
	return Filter{Taxonomy: f.Taxonomy, Tags: f.Tags.Clone()}
}

func (f Filter) predicate() query.Predicate[entity.Record] {
	var preds []query.Predicate[entity.Record]
	if f.Taxonomy.GoalId != "" {
		preds = append(preds, goalIs(f.Taxonomy.GoalId))
	}
	if f.Taxonomy.OutcomeId != "" {
		preds = append(preds, outcomeIs(f.Taxonomy.OutcomeId))
	}
	if f.Taxonomy.Level != "" {
		preds = append(preds, query.LevelIs[entity.Record](f.Taxonomy.Level))
	}
	if len(f.Tags) > 0 {
		preds = append(preds, query.HasAnyTag[entity.Record](f.Tags))
	}
	return query.And(preds...)
}

func goalIs(id string) query.Predicate[entity.Record] {
	return func(r entity.Record) bool {
		t, ok := r.(entity.Taxonomic)
		return ok && t.GetGoalId() != nil && *t.GetGoalId() == id
	}
}

func outcomeIs(id string) query.Predicate[entity.Record] {
	return func(r entity.Record) bool {
		t, ok := r.(entity.Taxonomic)
		return ok && t.GetOutcomeId() != nil && *t.GetOutcomeId() == id
	}
}

// compute filters records, then orders them by search score when q is
// active and by feed order (pinned, recency) otherwise.
func compute[T Item](m *search.Matcher, records []T, f Filter, q search.Query, lang entity.Lang) []T {
	filtered := query.Filter(records, f.predicate())
	slices.SortStableFunc(filtered, func(a, b T) int { return contract.FeedCompare(a, b) })
	if q.Empty() {
		return filtered
	}

	// Rank is stable, so equal scores stay in feed order.
	ranked := search.Rank(m, filtered, q, lang)
	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
	}
	return out
}
