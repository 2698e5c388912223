package entity

// Insight is a short-form note published alongside posts.
type Insight struct {
	Base
	Body      Localized
	SourceUrl *string
}

func (i *Insight) SearchBody() Localized { return i.Body }

func (i *Insight) Field(name string) (any, bool) {
	return i.baseField(name)
}

func (i *Insight) Clone() *Insight {
	out := *i
	out.Base = i.Base.clone()
	return &out
}
