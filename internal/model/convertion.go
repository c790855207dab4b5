package model

import (
	"time"

	"github.com/groove-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	u := User{
		ID:           user.ID,
		Nickname:     user.Nickname,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt.Format(DefaultTimeLayout),
	}

	if includeSensitive {
		u.Email = user.Email
	}

	return u
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:           user.ID,
		Nickname:     user.Nickname,
		ProfileImage: user.ProfileImage,
	}
}

func ConvertClub(club *entity.Club) Club {
	if club == nil {
		return Club{}
	}

	return Club{
		ID:           club.ID,
		Name:         club.Name,
		Intro:        club.Intro,
		Description:  club.Description,
		LocationName: club.LocationName,
		Type:         string(club.Type),
		Image:        club.Image,
		Tags:         nonNil(club.Tags),
		MemberCount:  club.MemberCount,
		CreatedAt:    club.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertClubJoin(join *entity.ClubJoin, club *Club, user *ShortUser) ClubJoin {
	if join == nil {
		return ClubJoin{}
	}

	return ClubJoin{
		ID:        join.ID,
		Club:      club,
		User:      user,
		Role:      string(join.Role),
		Status:    string(join.Status),
		CreatedAt: join.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPost(post *entity.Post, author ShortUser, isLiked bool) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:        post.ID,
		Author:    author,
		Scope:     string(post.Scope),
		ClubID:    post.ClubID.Int64,
		Title:     post.Title,
		Content:   post.Content,
		Tags:      nonNil(post.Tags),
		Images:    nonNil(post.Images),
		ViewCount: post.ViewCount,
		LikeCount: post.LikeCount,
		IsLiked:   isLiked,
		CreatedAt: post.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt: post.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertEvent(event *entity.Event, host ShortUser, isLiked bool, participantCount int64) Event {
	if event == nil {
		return Event{}
	}

	var capacity *int64
	if event.Capacity.Valid {
		capacity = &event.Capacity.Int64
	}

	return Event{
		ID:               event.ID,
		Host:             host,
		Scope:            string(event.Scope),
		ClubID:           event.ClubID.Int64,
		Type:             string(event.Type),
		Title:            event.Title,
		Content:          event.Content,
		Tags:             nonNil(event.Tags),
		Images:           nonNil(event.Images),
		LocationName:     event.LocationName,
		LocationAddress:  event.LocationAddress,
		LocationLink:     event.LocationLink,
		Capacity:         capacity,
		ParticipantCount: participantCount,
		StartsAt:         event.StartsAt.Format(DefaultTimeLayout),
		EndsAt:           event.EndsAt.Format(DefaultTimeLayout),
		ViewCount:        event.ViewCount,
		LikeCount:        event.LikeCount,
		IsLiked:          isLiked,
		CreatedAt:        event.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertEventJoin(join *entity.EventJoin, event *Event, participant *ShortUser) EventJoin {
	if join == nil {
		return EventJoin{}
	}

	return EventJoin{
		ID:          join.ID,
		Event:       event,
		Participant: participant,
		Status:      string(join.Status),
		CreatedAt:   join.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertComment(comment *entity.Comment, author ShortUser) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		Author:    author,
		PostID:    comment.PostID.Int64,
		EventID:   comment.EventID.Int64,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt: comment.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertNotification(n *entity.Notification) Notification {
	if n == nil {
		return Notification{}
	}

	return Notification{
		ID:          n.ID,
		Type:        string(n.Type),
		ActorID:     n.ActorID,
		ReferenceID: n.ReferenceID,
		Message:     n.Message,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format(DefaultTimeLayout),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
