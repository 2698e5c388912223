package search

import (
	"testing"

	"portfolio-cms-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insight(id string, title, body entity.Localized) *entity.Insight {
	return &entity.Insight{
		Base: entity.Base{Id: id, Title: title, Status: entity.ContentStatusPublished},
		Body: body,
	}
}

func TestMatch_EmptyQueryNeverMatches(t *testing.T) {
	m := NewMatcher()
	rec := insight("1", entity.Localized{Vi: "anything"}, entity.Localized{Vi: "at all"})

	for _, q := range []string{"", "   ", "\t\n"} {
		res := m.Match(rec, q, entity.LangVi)
		assert.False(t, res.IsMatch, "query %q", q)
		assert.Zero(t, res.Score)
	}
}

func TestMatch_DiacriticInsensitive(t *testing.T) {
	m := NewMatcher()
	rec := insight("1", entity.Localized{Vi: "Học máy cơ bản"}, entity.Localized{})

	for _, q := range []string{"hoc may", "Học Máy", "HOC MÁY", "co ban"} {
		assert.True(t, m.Match(rec, q, entity.LangVi).IsMatch, "query %q", q)
	}
	assert.False(t, m.Match(rec, "deep learning", entity.LangVi).IsMatch)
}

func TestMatch_EnglishFallsBackToVietnamese(t *testing.T) {
	m := NewMatcher()
	rec := insight("1",
		entity.Localized{Vi: "Ghi chú"},
		entity.Localized{Vi: "Trí tuệ nhân tạo thay đổi nghề nghiệp"},
	)

	res := m.Match(rec, "nhân tạo", entity.LangEn)
	require.True(t, res.IsMatch)
	assert.Equal(t, 2*DefaultBodyWeight, res.Score)
	assert.True(t, m.Match(rec, "nhan tao", entity.LangEn).IsMatch)
}

func TestMatch_EnglishExcerptDoesNotHideVietnameseBody(t *testing.T) {
	m := NewMatcher()
	rec := &entity.Post{
		Base:    entity.Base{Id: "1", Title: entity.Localized{Vi: "Công nghệ", En: "Technology"}},
		Excerpt: entity.Localized{Vi: "Tóm tắt", En: "Summary"},
		Body:    entity.Localized{Vi: "Trí tuệ nhân tạo"},
	}

	res := m.Match(rec, "tri tue", entity.LangEn)
	require.True(t, res.IsMatch)
	assert.Equal(t, 2*DefaultBodyWeight, res.Score)
	assert.True(t, m.Match(rec, "summary", entity.LangEn).IsMatch)
	assert.False(t, m.Match(rec, "tom tat", entity.LangEn).IsMatch)
}

func TestMatch_EnglishFieldPreferredWhenPresent(t *testing.T) {
	m := NewMatcher()
	rec := insight("1",
		entity.Localized{Vi: "Sự nghiệp", En: "Career"},
		entity.Localized{Vi: "nội dung", En: "content"},
	)

	assert.True(t, m.Match(rec, "career", entity.LangEn).IsMatch)
	assert.False(t, m.Match(rec, "su nghiep", entity.LangEn).IsMatch)
	assert.True(t, m.Match(rec, "su nghiep", entity.LangVi).IsMatch)
}

func TestMatch_ScoreWeightsTitleAboveBody(t *testing.T) {
	m := NewMatcher()
	inTitle := insight("t", entity.Localized{Vi: "golang"}, entity.Localized{Vi: "x"})
	inBody := insight("b", entity.Localized{Vi: "x"}, entity.Localized{Vi: "golang"})
	twiceBody := insight("bb", entity.Localized{Vi: "x"}, entity.Localized{Vi: "go go"})

	assert.Equal(t, DefaultTitleWeight, m.Match(inTitle, "golang", entity.LangVi).Score)
	assert.Equal(t, DefaultBodyWeight, m.Match(inBody, "golang", entity.LangVi).Score)
	assert.Equal(t, 2*DefaultBodyWeight, m.Match(twiceBody, "go", entity.LangVi).Score)
}

func TestMatch_AllTokensRequired(t *testing.T) {
	m := NewMatcher()
	rec := insight("1", entity.Localized{Vi: "golang tips"}, entity.Localized{Vi: "channels"})

	res := m.Match(rec, "golang channels", entity.LangVi)
	require.True(t, res.IsMatch)
	assert.Equal(t, DefaultTitleWeight+DefaultBodyWeight, res.Score)
	assert.False(t, m.Match(rec, "golang rust", entity.LangVi).IsMatch)
}

func TestRank_OrdersByScoreThenInput(t *testing.T) {
	m := NewMatcher()
	records := []*entity.Insight{
		insight("body", entity.Localized{Vi: "a"}, entity.Localized{Vi: "ai"}),
		insight("none", entity.Localized{Vi: "b"}, entity.Localized{Vi: "c"}),
		insight("title", entity.Localized{Vi: "ai"}, entity.Localized{Vi: "d"}),
		insight("body2", entity.Localized{Vi: "e"}, entity.Localized{Vi: "ai"}),
	}

	ranked := Rank(m, records, Compile("AI"), entity.LangVi)
	got := make([]string, len(ranked))
	for i, r := range ranked {
		got[i] = r.Item.Id
	}
	assert.Equal(t, []string{"title", "body", "body2"}, got)
}
