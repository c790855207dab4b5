package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

const Password = "password123"

var (
	now = time.Now()

	// Users
	User1 = &entity.User{
		Base:     entity.Base{ID: 1},
		Email:    "user1@groove.dev",
		Password: hashPassword(Password),
		Nickname: "user1",
	}

	User2 = &entity.User{
		Base:     entity.Base{ID: 2},
		Email:    "user2@groove.dev",
		Password: hashPassword(Password),
		Nickname: "user2",
	}

	User3 = &entity.User{
		Base:     entity.Base{ID: 3},
		Email:    "user3@groove.dev",
		Password: hashPassword(Password),
		Nickname: "user3",
	}

	User4 = &entity.User{
		Base:         entity.Base{ID: 4},
		Email:        "user4@groove.dev",
		Password:     hashPassword(Password),
		Nickname:     "user4",
		ProfileImage: "/uploads/profiles/4/avatar.png",
	}

	Users = []*entity.User{User1, User2, User3, User4}

	// Clubs
	Club1 = &entity.Club{
		Base:         entity.Base{ID: 11},
		Name:         "Poppin Crew",
		Intro:        "We pop every weekend",
		LocationName: "Seoul",
		Type:         entity.ClubTypeCrew,
		Image:        "/uploads/clubs/1/club1.png",
		Tags:         entity.Array[string]{"popping"},
		MemberCount:  2,
	}

	Club2 = &entity.Club{
		Base:        entity.Base{ID: 12},
		Name:        "Breaking Club",
		Type:        entity.ClubTypeClub,
		MemberCount: 1,
	}

	Clubs = []*entity.Club{Club1, Club2}

	// Club joins
	ClubJoin1 = &entity.ClubJoin{
		Base:   entity.Base{ID: 21},
		UserID: User1.ID,
		ClubID: Club1.ID,
		Role:   entity.ClubRoleLeader,
		Status: entity.ClubJoinActive,
	}

	ClubJoin2 = &entity.ClubJoin{
		Base:   entity.Base{ID: 22},
		UserID: User2.ID,
		ClubID: Club1.ID,
		Role:   entity.ClubRoleMember,
		Status: entity.ClubJoinActive,
	}

	ClubJoin3 = &entity.ClubJoin{
		Base:   entity.Base{ID: 23},
		UserID: User3.ID,
		ClubID: Club1.ID,
		Role:   entity.ClubRoleMember,
		Status: entity.ClubJoinPending,
	}

	ClubJoin4 = &entity.ClubJoin{
		Base:   entity.Base{ID: 24},
		UserID: User4.ID,
		ClubID: Club2.ID,
		Role:   entity.ClubRoleLeader,
		Status: entity.ClubJoinActive,
	}

	ClubJoins = []*entity.ClubJoin{ClubJoin1, ClubJoin2, ClubJoin3, ClubJoin4}

	// Posts
	Post1 = &entity.Post{
		Base:      entity.Base{ID: 31, CreatedAt: now.Add(-time.Hour)},
		AuthorID:  User1.ID,
		Scope:     entity.ScopeGlobal,
		Title:     "Global post",
		Content:   "Hello dancers",
		Images:    entity.Array[string]{"/uploads/posts/1/post1.png"},
		LikeCount: 5,
	}

	Post2 = &entity.Post{
		Base:      entity.Base{ID: 32, CreatedAt: now.Add(-2 * time.Hour)},
		AuthorID:  User2.ID,
		Scope:     entity.ScopeClub,
		ClubID:    sql.NullInt64{Int64: Club1.ID, Valid: true},
		Title:     "Club1 practice",
		LikeCount: 3,
	}

	Post3 = &entity.Post{
		Base:      entity.Base{ID: 33, CreatedAt: now.Add(-3 * time.Hour)},
		AuthorID:  User4.ID,
		Scope:     entity.ScopeClub,
		ClubID:    sql.NullInt64{Int64: Club2.ID, Valid: true},
		Title:     "Club2 practice",
		LikeCount: 7,
	}

	Post4 = &entity.Post{
		Base:      entity.Base{ID: 34, CreatedAt: now.Add(-20 * 24 * time.Hour)},
		AuthorID:  User1.ID,
		Scope:     entity.ScopeGlobal,
		Title:     "Old but popular",
		LikeCount: 100,
	}

	Posts = []*entity.Post{Post1, Post2, Post3, Post4}

	// Events
	Event1 = &entity.Event{
		Base:         entity.Base{ID: 41},
		HostID:       User1.ID,
		Scope:        entity.ScopeGlobal,
		Type:         entity.EventTypeBattle,
		Title:        "Open battle",
		LocationName: "Hongdae",
		Capacity:     sql.NullInt64{Int64: 2, Valid: true},
		StartsAt:     now.Add(24 * time.Hour),
		EndsAt:       now.Add(26 * time.Hour),
	}

	Event2 = &entity.Event{
		Base:     entity.Base{ID: 42},
		HostID:   User1.ID,
		Scope:    entity.ScopeClub,
		ClubID:   sql.NullInt64{Int64: Club1.ID, Valid: true},
		Type:     entity.EventTypeJam,
		Title:    "Club1 jam",
		StartsAt: now.Add(48 * time.Hour),
		EndsAt:   now.Add(50 * time.Hour),
	}

	Events = []*entity.Event{Event1, Event2}

	EventJoin1 = &entity.EventJoin{
		Base:          entity.Base{ID: 51},
		EventID:       Event1.ID,
		ParticipantID: User2.ID,
		Status:        entity.EventJoinConfirmed,
	}

	Comment1 = &entity.Comment{
		Base:     entity.Base{ID: 61},
		AuthorID: User2.ID,
		PostID:   sql.NullInt64{Int64: Post1.ID, Valid: true},
		Content:  "Nice",
	}

	PostLike1 = &entity.PostLike{
		PostID: Post1.ID,
		UserID: User2.ID,
	}
)

// CreateFixtureDb inserts the fixture rows into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	db := xcontext.DB(ctx)

	records := []any{
		Users, Clubs, ClubJoins, Posts, Events, EventJoin1, Comment1, PostLike1,
	}

	for _, record := range records {
		if err := db.Create(record).Error; err != nil {
			panic(err)
		}
	}
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	return string(hashed)
}
