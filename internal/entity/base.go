package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/groove-lab/backend/pkg/enum"
	"gorm.io/gorm"
)

type Base struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type Scope string

var (
	ScopeGlobal = enum.New(Scope("GLOBAL"))
	ScopeClub   = enum.New(Scope("CLUB"))
)

type Array[T any] []T

func (a *Array[T]) Scan(obj any) error {
	switch t := obj.(type) {
	case string:
		return json.Unmarshal([]byte(t), a)
	case []byte:
		return json.Unmarshal(t, a)
	case nil:
		*a = nil
		return nil
	}

	return fmt.Errorf("cannot scan invalid data type %T", obj)
}

func (a Array[T]) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}

	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Club{},
		&ClubJoin{},
		&Post{},
		&PostLike{},
		&Event{},
		&EventJoin{},
		&EventLike{},
		&Comment{},
		&Notification{},
	)
}
