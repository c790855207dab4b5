package model

type EventJoin struct {
	ID          int64      `json:"id"`
	Event       *Event     `json:"event,omitempty"`
	Participant *ShortUser `json:"participant,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   string     `json:"created_at"`
}

type ApplyEventRequest struct {
	EventID int64 `uri:"event_id" validate:"required"`
}

type ApplyEventResponse EventJoin

type CancelEventJoinRequest struct {
	EventID int64 `uri:"event_id" validate:"required"`
}

type CancelEventJoinResponse EventJoin

type GetEventParticipantsRequest struct {
	EventID int64 `uri:"event_id" validate:"required"`
	Offset  int   `form:"offset"`
	Limit   int   `form:"limit"`
}

type GetEventParticipantsResponse struct {
	Participants []EventJoin `json:"participants"`
}

type GetMyEventJoinsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetMyEventJoinsResponse struct {
	Joins []EventJoin `json:"joins"`
}
