package model

import "time"

type Event struct {
	ID               int64     `json:"id"`
	Host             ShortUser `json:"host"`
	Scope            string    `json:"scope"`
	ClubID           int64     `json:"club_id,omitempty"`
	Type             string    `json:"type"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Tags             []string  `json:"tags"`
	Images           []string  `json:"images"`
	LocationName     string    `json:"location_name"`
	LocationAddress  string    `json:"location_address"`
	LocationLink     string    `json:"location_link"`
	Capacity         *int64    `json:"capacity"`
	ParticipantCount int64     `json:"participant_count"`
	StartsAt         string    `json:"starts_at"`
	EndsAt           string    `json:"ends_at"`
	ViewCount        int64     `json:"view_count"`
	LikeCount        int64     `json:"like_count"`
	IsLiked          bool      `json:"is_liked"`
	CreatedAt        string    `json:"created_at"`
}

type CreateEventRequest struct {
	Scope           string    `json:"scope" validate:"required"`
	ClubID          int64     `json:"club_id"`
	Type            string    `json:"type" validate:"required"`
	Title           string    `json:"title" validate:"required,max=200"`
	Content         string    `json:"content"`
	Tags            []string  `json:"tags" validate:"max=10"`
	Images          []string  `json:"images" validate:"max=10"`
	LocationName    string    `json:"location_name" validate:"max=128"`
	LocationAddress string    `json:"location_address" validate:"max=255"`
	LocationLink    string    `json:"location_link" validate:"omitempty,url"`
	Capacity        *int64    `json:"capacity"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	EndsAt          time.Time `json:"ends_at" validate:"required"`
}

type CreateEventResponse Event

type GetEventRequest struct {
	EventID int64 `uri:"event_id" validate:"required"`
}

type GetEventResponse Event

type UpdateEventRequest struct {
	EventID         int64      `uri:"event_id" validate:"required"`
	Type            string     `json:"type"`
	Title           string     `json:"title" validate:"max=200"`
	Content         *string    `json:"content"`
	Tags            []string   `json:"tags" validate:"max=10"`
	NewImages       []string   `json:"new_images"`
	KeepImages      []string   `json:"keep_images"`
	LocationName    *string    `json:"location_name" validate:"omitempty,max=128"`
	LocationAddress *string    `json:"location_address" validate:"omitempty,max=255"`
	LocationLink    *string    `json:"location_link" validate:"omitempty,url"`
	Capacity        *int64     `json:"capacity"`
	Unlimited       bool       `json:"unlimited"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
}

type UpdateEventResponse Event

type DeleteEventRequest struct {
	EventID int64 `uri:"event_id" validate:"required"`
}

type DeleteEventResponse struct{}

type GetUpcomingEventsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetUpcomingEventsResponse struct {
	Events []Event `json:"events"`
}

type GetMyClubEventsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetMyClubEventsResponse struct {
	Events []Event `json:"events"`
}

type GetClubEventsRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
	Offset int   `form:"offset"`
	Limit  int   `form:"limit"`
}

type GetClubEventsResponse struct {
	Events []Event `json:"events"`
}

type LikeEventRequest struct {
	EventID int64 `uri:"event_id" validate:"required"`
}

type LikeEventResponse struct {
	IsLiked   bool  `json:"is_liked"`
	LikeCount int64 `json:"like_count"`
}
