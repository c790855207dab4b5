package model

type Comment struct {
	ID        int64     `json:"id"`
	Author    ShortUser `json:"author"`
	PostID    int64     `json:"post_id,omitempty"`
	EventID   int64     `json:"event_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type CreatePostCommentRequest struct {
	PostID  int64  `uri:"post_id" validate:"required"`
	Content string `json:"content" validate:"required,max=1000"`
}

type CreateEventCommentRequest struct {
	EventID int64  `uri:"event_id" validate:"required"`
	Content string `json:"content" validate:"required,max=1000"`
}

type CreateCommentResponse Comment

type GetPostCommentsRequest struct {
	PostID int64 `uri:"post_id" validate:"required"`
	Offset int   `form:"offset"`
	Limit  int   `form:"limit"`
}

type GetEventCommentsRequest struct {
	EventID int64 `uri:"event_id" validate:"required"`
	Offset  int   `form:"offset"`
	Limit   int   `form:"limit"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type UpdateCommentRequest struct {
	CommentID int64  `uri:"comment_id" validate:"required"`
	Content   string `json:"content" validate:"required,max=1000"`
}

type UpdateCommentResponse Comment

type DeleteCommentRequest struct {
	CommentID int64 `uri:"comment_id" validate:"required"`
}

type DeleteCommentResponse struct{}
