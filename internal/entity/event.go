package entity

import (
	"database/sql"
	"time"

	"github.com/groove-lab/backend/pkg/enum"
)

type EventType string

var (
	EventTypeWorkshop    = enum.New(EventType("WORKSHOP"))
	EventTypeBattle      = enum.New(EventType("BATTLE"))
	EventTypePerformance = enum.New(EventType("PERFORMANCE"))
	EventTypeJam         = enum.New(EventType("JAM"))
	EventTypeClass       = enum.New(EventType("CLASS"))
	EventTypeEtc         = enum.New(EventType("ETC"))
)

type Event struct {
	Base

	HostID int64 `gorm:"index;not null"`
	Host   User  `gorm:"foreignKey:HostID"`

	Scope  Scope         `gorm:"not null"`
	ClubID sql.NullInt64 `gorm:"index"`
	Club   Club          `gorm:"foreignKey:ClubID"`

	Type            EventType     `gorm:"not null"`
	Title           string        `gorm:"not null"`
	Content         string        `gorm:"type:text"`
	Tags            Array[string] `gorm:"type:text"`
	Images          Array[string] `gorm:"type:text"`
	LocationName    string
	LocationAddress string
	LocationLink    string

	// Capacity is the maximum number of confirmed participants, NULL means
	// unlimited.
	Capacity sql.NullInt64
	StartsAt time.Time `gorm:"index"`
	EndsAt   time.Time

	ViewCount int64
	LikeCount int64
	IsDeleted bool `gorm:"index;not null"`
}

type EventJoinStatus string

var (
	EventJoinConfirmed = enum.New(EventJoinStatus("CONFIRMED"))
	EventJoinCancelled = enum.New(EventJoinStatus("CANCELLED"))
)

type EventJoin struct {
	Base

	EventID int64 `gorm:"uniqueIndex:idx_event_joins_event_participant;not null"`
	Event   Event `gorm:"foreignKey:EventID"`

	ParticipantID int64 `gorm:"uniqueIndex:idx_event_joins_event_participant;index;not null"`
	Participant   User  `gorm:"foreignKey:ParticipantID"`

	Status    EventJoinStatus `gorm:"index;not null"`
	IsDeleted bool            `gorm:"index;not null"`
}

type EventLike struct {
	EventID int64 `gorm:"primaryKey"`
	Event   Event `gorm:"foreignKey:EventID"`

	UserID int64 `gorm:"primaryKey"`
	User   User  `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
