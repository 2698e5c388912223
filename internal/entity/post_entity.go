package entity

type Post struct {
	Base
	Slug      string
	Excerpt   Localized
	Body      Localized
	GoalId    *string
	OutcomeId *string
	Level     Level
	SeriesId  *string
}

func (p *Post) GetGoalId() *string    { return p.GoalId }
func (p *Post) GetOutcomeId() *string { return p.OutcomeId }
func (p *Post) GetLevel() Level       { return p.Level }

// SearchBody joins excerpt and body. Each part falls back to Vietnamese on
// its own, so an English excerpt never hides a Vietnamese-only body.
func (p *Post) SearchBody() Localized {
	return Localized{
		Vi: joinText(p.Excerpt.Resolve(LangVi), p.Body.Resolve(LangVi)),
		En: joinText(p.Excerpt.Resolve(LangEn), p.Body.Resolve(LangEn)),
	}
}

func (p *Post) Field(name string) (any, bool) {
	switch name {
	case FieldLevel:
		return string(p.Level), p.Level != ""
	case "slug":
		return p.Slug, p.Slug != ""
	}
	return p.baseField(name)
}

func (p *Post) Clone() *Post {
	out := *p
	out.Base = p.Base.clone()
	return &out
}
