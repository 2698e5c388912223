package search

import (
	"slices"
	"strings"

	"portfolio-cms-be/internal/entity"
)

const (
	DefaultTitleWeight = 3
	DefaultBodyWeight  = 1
)

type Result struct {
	IsMatch bool
	Score   int
}

// Matcher is a bilingual substring matcher. Fields missing in the
// requested language are read from the default language instead.
type Matcher struct {
	DefaultLang entity.Lang
	TitleWeight int
	BodyWeight  int
}

func NewMatcher() *Matcher {
	return &Matcher{
		DefaultLang: entity.DefaultLang,
		TitleWeight: DefaultTitleWeight,
		BodyWeight:  DefaultBodyWeight,
	}
}

// Query is a pre-normalized search query.
type Query struct {
	Raw    string
	Tokens []string
}

func Compile(raw string) Query {
	return Query{Raw: raw, Tokens: Tokenize(raw)}
}

func (q Query) Empty() bool {
	return len(q.Tokens) == 0
}

// Match scores rec against query in lang. An empty query never matches.
func (m *Matcher) Match(rec entity.Searchable, query string, lang entity.Lang) Result {
	return m.MatchQuery(rec, Compile(query), lang)
}

// MatchQuery requires every token to occur in the title or body. Score
// counts occurrences, weighting title hits above body hits.
func (m *Matcher) MatchQuery(rec entity.Searchable, q Query, lang entity.Lang) Result {
	if q.Empty() {
		return Result{}
	}

	title := Normalize(m.resolve(rec.SearchTitle(), lang))
	body := Normalize(m.resolve(rec.SearchBody(), lang))

	score := 0
	for _, tok := range q.Tokens {
		inTitle := strings.Count(title, tok)
		inBody := strings.Count(body, tok)
		if inTitle+inBody == 0 {
			return Result{}
		}
		score += inTitle*m.TitleWeight + inBody*m.BodyWeight
	}
	return Result{IsMatch: true, Score: score}
}

func (m *Matcher) resolve(text entity.Localized, lang entity.Lang) string {
	if v := text.Raw(lang); strings.TrimSpace(v) != "" {
		return v
	}
	return text.Raw(m.DefaultLang)
}

type Ranked[T entity.Searchable] struct {
	Item  T
	Score int
}

// Rank keeps matching records ordered by score, highest first. Equal
// scores keep their input order.
func Rank[T entity.Searchable](m *Matcher, records []T, q Query, lang entity.Lang) []Ranked[T] {
	out := make([]Ranked[T], 0, len(records))
	for _, r := range records {
		if res := m.MatchQuery(r, q, lang); res.IsMatch {
			out = append(out, Ranked[T]{Item: r, Score: res.Score})
		}
	}
	slices.SortStableFunc(out, func(a, b Ranked[T]) int {
		return b.Score - a.Score
	})
	return out
}
