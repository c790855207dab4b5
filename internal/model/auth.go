package model

// AccessToken is the principal carried by the access token.
type AccessToken struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type RefreshToken struct {
	UserID  int64  `json:"user_id"`
	Family  string `json:"family"`
	Counter uint64 `json:"counter"`
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=128"`
	Password string `json:"password" validate:"required,min=8,max=64"`
	Nickname string `json:"nickname" validate:"required,max=32"`
}

type SignUpResponse User

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}
