package model

type Post struct {
	ID        int64     `json:"id"`
	Author    ShortUser `json:"author"`
	Scope     string    `json:"scope"`
	ClubID    int64     `json:"club_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Images    []string  `json:"images"`
	ViewCount int64     `json:"view_count"`
	LikeCount int64     `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type CreatePostRequest struct {
	Scope   string   `json:"scope" validate:"required"`
	ClubID  int64    `json:"club_id"`
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"max=10"`
	Images  []string `json:"images" validate:"max=10"`
}

type CreatePostResponse Post

type GetPostRequest struct {
	PostID int64 `uri:"post_id" validate:"required"`
}

type GetPostResponse Post

type UpdatePostRequest struct {
	PostID  int64    `uri:"post_id" validate:"required"`
	Title   string   `json:"title" validate:"max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" validate:"max=10"`

	// Images which are not in KeepImages are removed from storage, NewImages
	// are appended after the kept ones.
	NewImages  []string `json:"new_images"`
	KeepImages []string `json:"keep_images"`
}

type UpdatePostResponse Post

type DeletePostRequest struct {
	PostID int64 `uri:"post_id" validate:"required"`
}

type DeletePostResponse struct{}

type GetHotPostsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetHotPostsResponse struct {
	Posts []Post `json:"posts"`
}

type GetMyClubPostsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetMyClubPostsResponse struct {
	Posts []Post `json:"posts"`
}

type GetClubPostsRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
	Offset int   `form:"offset"`
	Limit  int   `form:"limit"`
}

type GetClubPostsResponse struct {
	Posts []Post `json:"posts"`
}

type LikePostRequest struct {
	PostID int64 `uri:"post_id" validate:"required"`
}

type LikePostResponse struct {
	IsLiked   bool  `json:"is_liked"`
	LikeCount int64 `json:"like_count"`
}
