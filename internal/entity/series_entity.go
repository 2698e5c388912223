package entity

type Series struct {
	Base
	Slug        string
	Description Localized
	PostIds     []string
}

func (s *Series) SearchBody() Localized { return s.Description }

func (s *Series) Field(name string) (any, bool) {
	switch name {
	case "post_count":
		return len(s.PostIds), true
	case "slug":
		return s.Slug, s.Slug != ""
	}
	return s.baseField(name)
}

func (s *Series) Clone() *Series {
	out := *s
	out.Base = s.Base.clone()
	out.PostIds = append([]string(nil), s.PostIds...)
	return &out
}
