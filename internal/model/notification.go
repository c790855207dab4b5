package model

type Notification struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	ActorID     int64  `json:"actor_id"`
	ReferenceID int64  `json:"reference_id"`
	Message     string `json:"message"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

type GetMyNotificationsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetMyNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type ReadNotificationRequest struct {
	NotificationID int64 `uri:"notification_id" validate:"required"`
}

type ReadNotificationResponse struct{}
