package model

type Club struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Intro        string   `json:"intro"`
	Description  string   `json:"description"`
	LocationName string   `json:"location_name"`
	Type         string   `json:"type"`
	Image        string   `json:"image"`
	Tags         []string `json:"tags"`
	MemberCount  int64    `json:"member_count"`
	CreatedAt    string   `json:"created_at"`
}

type CreateClubRequest struct {
	Name         string   `json:"name" validate:"required,max=64"`
	Intro        string   `json:"intro" validate:"max=255"`
	Description  string   `json:"description"`
	LocationName string   `json:"location_name" validate:"max=128"`
	Type         string   `json:"type" validate:"required"`
	Image        string   `json:"image"`
	Tags         []string `json:"tags" validate:"max=10"`
}

type CreateClubResponse Club

type GetClubRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
}

type GetClubResponse Club

type GetClubsRequest struct {
	Q      string `form:"q"`
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
}

type GetClubsResponse struct {
	Clubs []Club `json:"clubs"`
}

type UpdateClubRequest struct {
	ClubID       int64    `uri:"club_id" validate:"required"`
	Name         string   `json:"name" validate:"max=64"`
	Intro        *string  `json:"intro" validate:"omitempty,max=255"`
	Description  *string  `json:"description"`
	LocationName *string  `json:"location_name" validate:"omitempty,max=128"`
	Type         string   `json:"type"`
	Image        *string  `json:"image"`
	Tags         []string `json:"tags" validate:"max=10"`
}

type UpdateClubResponse Club

type DeleteClubImageRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
}

type DeleteClubImageResponse struct{}

type DeleteClubRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
}

type DeleteClubResponse struct{}
