package entity

type User struct {
	Base

	Email        string `gorm:"unique;not null"`
	Password     string `gorm:"not null"`
	Nickname     string `gorm:"unique;not null"`
	ProfileImage string
	IsDeleted    bool `gorm:"index;not null"`
}
