package entity

import "time"

type Photo struct {
	Base
	Caption  Localized
	ImageUrl string
	Album    string
	TakenAt  *time.Time
}

func (p *Photo) SearchBody() Localized { return p.Caption }

func (p *Photo) Field(name string) (any, bool) {
	switch name {
	case "album":
		return p.Album, p.Album != ""
	case "taken_at":
		if p.TakenAt == nil {
			return nil, false
		}
		return *p.TakenAt, true
	}
	return p.baseField(name)
}

func (p *Photo) Clone() *Photo {
	out := *p
	out.Base = p.Base.clone()
	return &out
}
