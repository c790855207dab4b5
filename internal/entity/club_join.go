package entity

import "github.com/groove-lab/backend/pkg/enum"

type ClubRole string

// Roles are ordered by their authority, the string order is also the rank.
var (
	ClubRoleLeader  = enum.New(ClubRole("LEADER"))
	ClubRoleManager = enum.New(ClubRole("MANAGER"))
	ClubRoleMember  = enum.New(ClubRole("MEMBER"))
)

var (
	ClubLeaderGroup = []ClubRole{ClubRoleLeader}
	ClubAdminGroup  = []ClubRole{ClubRoleLeader, ClubRoleManager}
	ClubMemberGroup = []ClubRole{ClubRoleLeader, ClubRoleManager, ClubRoleMember}
)

// Outranks reports whether r has strictly more authority than other.
func (r ClubRole) Outranks(other ClubRole) bool {
	return r.rank() < other.rank()
}

func (r ClubRole) rank() int {
	switch r {
	case ClubRoleLeader:
		return 0
	case ClubRoleManager:
		return 1
	default:
		return 2
	}
}

type ClubJoinStatus string

var (
	ClubJoinPending  = enum.New(ClubJoinStatus("PENDING"))
	ClubJoinActive   = enum.New(ClubJoinStatus("ACTIVE"))
	ClubJoinRejected = enum.New(ClubJoinStatus("REJECTED"))
)

type ClubJoin struct {
	Base

	UserID int64 `gorm:"uniqueIndex:idx_club_joins_user_club;not null"`
	User   User  `gorm:"foreignKey:UserID"`

	ClubID int64 `gorm:"uniqueIndex:idx_club_joins_user_club;index;not null"`
	Club   Club  `gorm:"foreignKey:ClubID"`

	Role      ClubRole       `gorm:"not null"`
	Status    ClubJoinStatus `gorm:"index;not null"`
	IsDeleted bool           `gorm:"index;not null"`
}
