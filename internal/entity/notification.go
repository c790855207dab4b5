package entity

import "github.com/groove-lab/backend/pkg/enum"

type NotificationType string

var (
	NotificationClubApplied  = enum.New(NotificationType("CLUB_APPLIED"))
	NotificationClubApproved = enum.New(NotificationType("CLUB_APPROVED"))
	NotificationClubRejected = enum.New(NotificationType("CLUB_REJECTED"))
	NotificationEventJoined  = enum.New(NotificationType("EVENT_JOINED"))
	NotificationCommented    = enum.New(NotificationType("COMMENTED"))
)

type Notification struct {
	Base

	RecipientID int64 `gorm:"index;not null"`
	Recipient   User  `gorm:"foreignKey:RecipientID"`

	ActorID     int64
	Type        NotificationType `gorm:"not null"`
	ReferenceID int64
	Message     string
	IsRead      bool `gorm:"not null"`
}
