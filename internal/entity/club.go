package entity

import "github.com/groove-lab/backend/pkg/enum"

type ClubType string

var (
	ClubTypeClub = enum.New(ClubType("CLUB"))
	ClubTypeCrew = enum.New(ClubType("CREW"))
)

type Club struct {
	Base

	Name         string `gorm:"not null"`
	Intro        string
	Description  string `gorm:"type:text"`
	LocationName string
	Type         ClubType `gorm:"not null"`
	Image        string
	Tags         Array[string] `gorm:"type:text"`
	MemberCount  int64
	IsDeleted    bool `gorm:"index;not null"`
}
