package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentBase holds the columns every content table shares.
type ContentBase struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Status      string                      `gorm:"type:varchar(16);not null;default:'draft';index"`
	TitleVi     string                      `gorm:"type:varchar(255);not null"`
	TitleEn     string                      `gorm:"type:varchar(255)"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Pinned      bool                        `gorm:"not null;default:false;index"`
	Featured    bool                        `gorm:"not null;default:false"`
	PublishedAt *time.Time                  `gorm:"index"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt              `gorm:"index"`
}

type Post struct {
	ContentBase
	Slug      string     `gorm:"type:varchar(255);uniqueIndex"`
	ExcerptVi string     `gorm:"type:text"`
	ExcerptEn string     `gorm:"type:text"`
	BodyVi    string     `gorm:"type:text"`
	BodyEn    string     `gorm:"type:text"`
	GoalId    *string    `gorm:"type:varchar(64);index"`
	OutcomeId *string    `gorm:"type:varchar(64);index"`
	Level     string     `gorm:"type:varchar(16);index"`
	SeriesId  *uuid.UUID `gorm:"type:uuid;index"`
}

func (Post) TableName() string {
	return "posts"
}

type Insight struct {
	ContentBase
	BodyVi    string  `gorm:"type:text"`
	BodyEn    string  `gorm:"type:text"`
	SourceUrl *string `gorm:"type:text"`
}

func (Insight) TableName() string {
	return "insights"
}

type Series struct {
	ContentBase
	Slug          string                      `gorm:"type:varchar(255);uniqueIndex"`
	DescriptionVi string                      `gorm:"type:text"`
	DescriptionEn string                      `gorm:"type:text"`
	PostIds       datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
}

func (Series) TableName() string {
	return "series"
}

type Photo struct {
	ContentBase
	CaptionVi string `gorm:"type:text"`
	CaptionEn string `gorm:"type:text"`
	ImageUrl  string `gorm:"type:text;not null"`
	Album     string `gorm:"type:varchar(128);index"`
	TakenAt   *time.Time
}

func (Photo) TableName() string {
	return "photos"
}

// ContentModels lists every table for AutoMigrate.
func ContentModels() []interface{} {
	return []interface{}{&Post{}, &Insight{}, &Series{}, &Photo{}}
}
