package model

type ClubJoin struct {
	ID        int64      `json:"id"`
	Club      *Club      `json:"club,omitempty"`
	User      *ShortUser `json:"user,omitempty"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"created_at"`
}

type ApplyClubRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
}

type ApplyClubResponse ClubJoin

type CancelClubApplicationRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
}

type CancelClubApplicationResponse struct{}

type GetMyClubStatusRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
}

type GetMyClubStatusResponse struct {
	Status string `json:"status"`
	Role   string `json:"role,omitempty"`
}

type GetClubApplicationsRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
	Offset int   `form:"offset"`
	Limit  int   `form:"limit"`
}

type GetClubApplicationsResponse struct {
	Applications []ClubJoin `json:"applications"`
}

type ApproveClubApplicationRequest struct {
	ClubID      int64 `uri:"club_id" validate:"required"`
	ApplicantID int64 `uri:"applicant_id" validate:"required"`
}

type ApproveClubApplicationResponse ClubJoin

type RejectClubApplicationRequest struct {
	ClubID      int64 `uri:"club_id" validate:"required"`
	ApplicantID int64 `uri:"applicant_id" validate:"required"`
}

type RejectClubApplicationResponse ClubJoin

type GetClubMembersRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
	Offset int   `form:"offset"`
	Limit  int   `form:"limit"`
}

type GetClubMembersResponse struct {
	Members []ClubJoin `json:"members"`
}

type ChangeClubMemberRoleRequest struct {
	ClubID   int64  `uri:"club_id" validate:"required"`
	MemberID int64  `uri:"member_id" validate:"required"`
	NewRole  string `form:"newRole" validate:"required"`
}

type ChangeClubMemberRoleResponse ClubJoin

type KickClubMemberRequest struct {
	ClubID   int64 `uri:"club_id" validate:"required"`
	MemberID int64 `uri:"member_id" validate:"required"`
}

type KickClubMemberResponse struct{}

type LeaveClubRequest struct {
	ClubID int64 `uri:"club_id" validate:"required"`
}

type LeaveClubResponse struct{}

type GetMyClubsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetMyClubsResponse struct {
	Clubs []ClubJoin `json:"clubs"`
}
