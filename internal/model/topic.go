package model

// ActivityEvent is the message published to the activity topic.
type ActivityEvent struct {
	Type        string `json:"type"`
	ActorID     int64  `json:"actor_id"`
	RecipientID int64  `json:"recipient_id"`
	ReferenceID int64  `json:"reference_id"`
	Message     string `json:"message"`
}
