package model

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email,omitempty"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type ShortUser struct {
	ID           int64  `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
}

type GetMeRequest struct{}

type GetMeResponse User

type UpdateMeRequest struct {
	Nickname     string  `json:"nickname" validate:"omitempty,max=32"`
	ProfileImage *string `json:"profile_image"`
}

type UpdateMeResponse User

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=64"`
}

type UpdatePasswordResponse struct{}

type DeleteMeRequest struct{}

type DeleteMeResponse struct{}
