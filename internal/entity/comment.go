package entity

import "database/sql"

type Comment struct {
	Base

	AuthorID int64 `gorm:"index;not null"`
	Author   User  `gorm:"foreignKey:AuthorID"`

	// Exactly one of PostID and EventID is valid.
	PostID  sql.NullInt64 `gorm:"index"`
	Post    Post          `gorm:"foreignKey:PostID"`
	EventID sql.NullInt64 `gorm:"index"`
	Event   Event         `gorm:"foreignKey:EventID"`

	Content   string `gorm:"type:text;not null"`
	IsDeleted bool   `gorm:"index;not null"`
}
