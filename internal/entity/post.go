package entity

import (
	"database/sql"
	"time"
)

type Post struct {
	Base

	AuthorID int64 `gorm:"index;not null"`
	Author   User  `gorm:"foreignKey:AuthorID"`

	Scope  Scope         `gorm:"not null"`
	ClubID sql.NullInt64 `gorm:"index"`
	Club   Club          `gorm:"foreignKey:ClubID"`

	Title     string        `gorm:"not null"`
	Content   string        `gorm:"type:text"`
	Tags      Array[string] `gorm:"type:text"`
	Images    Array[string] `gorm:"type:text"`
	ViewCount int64
	LikeCount int64 `gorm:"index"`
	IsDeleted bool  `gorm:"index;not null"`
}

type PostLike struct {
	PostID int64 `gorm:"primaryKey"`
	Post   Post  `gorm:"foreignKey:PostID"`

	UserID int64 `gorm:"primaryKey"`
	User   User  `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
