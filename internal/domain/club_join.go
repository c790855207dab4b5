package domain

import (
	"context"
	"errors"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/enum"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// clubStatusNone is reported when the user never applied to the club.
const clubStatusNone = "NONE"

type ClubJoinDomain interface {
	Apply(context.Context, *model.ApplyClubRequest) (*model.ApplyClubResponse, error)
	CancelApplication(context.Context, *model.CancelClubApplicationRequest) (*model.CancelClubApplicationResponse, error)
	GetMyStatus(context.Context, *model.GetMyClubStatusRequest) (*model.GetMyClubStatusResponse, error)
	GetApplications(context.Context, *model.GetClubApplicationsRequest) (*model.GetClubApplicationsResponse, error)
	Approve(context.Context, *model.ApproveClubApplicationRequest) (*model.ApproveClubApplicationResponse, error)
	Reject(context.Context, *model.RejectClubApplicationRequest) (*model.RejectClubApplicationResponse, error)
	GetMembers(context.Context, *model.GetClubMembersRequest) (*model.GetClubMembersResponse, error)
	ChangeRole(context.Context, *model.ChangeClubMemberRoleRequest) (*model.ChangeClubMemberRoleResponse, error)
	Kick(context.Context, *model.KickClubMemberRequest) (*model.KickClubMemberResponse, error)
	Leave(context.Context, *model.LeaveClubRequest) (*model.LeaveClubResponse, error)
}

type clubJoinDomain struct {
	clubRepo         repository.ClubRepository
	clubJoinRepo     repository.ClubJoinRepository
	clubRoleVerifier *common.ClubRoleVerifier
	publisher        pubsub.Publisher
}

func NewClubJoinDomain(
	clubRepo repository.ClubRepository,
	clubJoinRepo repository.ClubJoinRepository,
	publisher pubsub.Publisher,
) ClubJoinDomain {
	return &clubJoinDomain{
		clubRepo:         clubRepo,
		clubJoinRepo:     clubJoinRepo,
		clubRoleVerifier: common.NewClubRoleVerifier(clubJoinRepo),
		publisher:        publisher,
	}
}

func (d *clubJoinDomain) Apply(
	ctx context.Context, req *model.ApplyClubRequest,
) (*model.ApplyClubResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	club, err := d.getClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	join, err := d.clubJoinRepo.Get(ctx, userID, club.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get club join: %v", err)
		return nil, errorx.Wrap(err)
	}

	if join == nil {
		join = &entity.ClubJoin{
			Base:   entity.Base{ID: newID(ctx)},
			UserID: userID,
			ClubID: club.ID,
			Role:   entity.ClubRoleMember,
			Status: entity.ClubJoinPending,
		}

		if err := d.clubJoinRepo.Create(ctx, join); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create club join: %v", err)
			return nil, errorx.Wrap(err)
		}
	} else {
		if !join.IsDeleted && join.Status != entity.ClubJoinRejected {
			return nil, errorx.New(errorx.Conflict, "You already applied to or joined the club")
		}

		// Rejected or removed users apply again with their old row.
		err := d.clubJoinRepo.UpdateByID(ctx, join.ID, map[string]any{
			"role":       entity.ClubRoleMember,
			"status":     entity.ClubJoinPending,
			"is_deleted": false,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reapply club join: %v", err)
			return nil, errorx.Wrap(err)
		}

		join.Role = entity.ClubRoleMember
		join.Status = entity.ClubJoinPending
		join.IsDeleted = false
	}

	leaderID, err := d.getLeaderID(ctx, club.ID)
	if err != nil {
		return nil, err
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	common.PublishActivity(ctx, d.publisher, entity.NotificationClubApplied, leaderID, club.ID,
		"A new dancer applied to %s", club.Name)

	clubModel := model.ConvertClub(club)
	resp := model.ApplyClubResponse(model.ConvertClubJoin(join, &clubModel, nil))
	return &resp, nil
}

func (d *clubJoinDomain) CancelApplication(
	ctx context.Context, req *model.CancelClubApplicationRequest,
) (*model.CancelClubApplicationResponse, error) {
	join, err := d.getPendingJoin(ctx, xcontext.RequestUserID(ctx), req.ClubID)
	if err != nil {
		return nil, err
	}

	if err := d.clubJoinRepo.DeleteByID(ctx, join.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete club application: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.CancelClubApplicationResponse{}, nil
}

func (d *clubJoinDomain) GetMyStatus(
	ctx context.Context, req *model.GetMyClubStatusRequest,
) (*model.GetMyClubStatusResponse, error) {
	if _, err := d.getClub(ctx, req.ClubID); err != nil {
		return nil, err
	}

	join, err := d.clubJoinRepo.Get(ctx, xcontext.RequestUserID(ctx), req.ClubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetMyClubStatusResponse{Status: clubStatusNone}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get club join: %v", err)
		return nil, errorx.Wrap(err)
	}

	if join.IsDeleted {
		return &model.GetMyClubStatusResponse{Status: clubStatusNone}, nil
	}

	resp := &model.GetMyClubStatusResponse{Status: string(join.Status)}
	if join.Status == entity.ClubJoinActive {
		resp.Role = string(join.Role)
	}

	return resp, nil
}

func (d *clubJoinDomain) GetApplications(
	ctx context.Context, req *model.GetClubApplicationsRequest,
) (*model.GetClubApplicationsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	_, err := verifyClubRole(ctx, d.clubRoleVerifier, req.ClubID,
		"Only leader or managers can see applications", entity.ClubAdminGroup...)
	if err != nil {
		return nil, err
	}

	joins, err := d.clubJoinRepo.GetListByClubID(ctx, repository.GetListClubJoinFilter{
		ClubID: req.ClubID,
		Status: entity.ClubJoinPending,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get club applications: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.GetClubApplicationsResponse{Applications: convertClubJoinsWithUser(joins)}, nil
}

func (d *clubJoinDomain) Approve(
	ctx context.Context, req *model.ApproveClubApplicationRequest,
) (*model.ApproveClubApplicationResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	club, err := d.getClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	_, err = verifyClubRole(ctx, d.clubRoleVerifier, club.ID,
		"Only leader or managers can approve applications", entity.ClubAdminGroup...)
	if err != nil {
		return nil, err
	}

	join, err := d.getPendingJoin(ctx, req.ApplicantID, club.ID)
	if err != nil {
		return nil, err
	}

	if err := d.clubJoinRepo.UpdateByID(ctx, join.ID, map[string]any{"status": entity.ClubJoinActive}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot approve application: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.clubRepo.IncreaseMemberCount(ctx, club.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase member count: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	common.PublishActivity(ctx, d.publisher, entity.NotificationClubApproved, join.UserID, club.ID,
		"Welcome to %s", club.Name)

	join.Status = entity.ClubJoinActive
	resp := model.ApproveClubApplicationResponse(model.ConvertClubJoin(join, nil, nil))
	return &resp, nil
}

func (d *clubJoinDomain) Reject(
	ctx context.Context, req *model.RejectClubApplicationRequest,
) (*model.RejectClubApplicationResponse, error) {
	club, err := d.getClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	_, err = verifyClubRole(ctx, d.clubRoleVerifier, club.ID,
		"Only leader or managers can reject applications", entity.ClubAdminGroup...)
	if err != nil {
		return nil, err
	}

	join, err := d.getPendingJoin(ctx, req.ApplicantID, club.ID)
	if err != nil {
		return nil, err
	}

	if err := d.clubJoinRepo.UpdateByID(ctx, join.ID, map[string]any{"status": entity.ClubJoinRejected}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reject application: %v", err)
		return nil, errorx.Wrap(err)
	}

	common.PublishActivity(ctx, d.publisher, entity.NotificationClubRejected, join.UserID, club.ID,
		"Your application to %s was declined", club.Name)

	join.Status = entity.ClubJoinRejected
	resp := model.RejectClubApplicationResponse(model.ConvertClubJoin(join, nil, nil))
	return &resp, nil
}

func (d *clubJoinDomain) GetMembers(
	ctx context.Context, req *model.GetClubMembersRequest,
) (*model.GetClubMembersResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	if _, err := d.getClub(ctx, req.ClubID); err != nil {
		return nil, err
	}

	joins, err := d.clubJoinRepo.GetListByClubID(ctx, repository.GetListClubJoinFilter{
		ClubID: req.ClubID,
		Status: entity.ClubJoinActive,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get club members: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.GetClubMembersResponse{Members: convertClubJoinsWithUser(joins)}, nil
}

func (d *clubJoinDomain) ChangeRole(
	ctx context.Context, req *model.ChangeClubMemberRoleRequest,
) (*model.ChangeClubMemberRoleResponse, error) {
	newRole, err := enum.ToEnum[entity.ClubRole](req.NewRole)
	if err != nil || newRole == entity.ClubRoleLeader {
		return nil, errorx.NewInvalidField("newRole", "Role must be MEMBER or MANAGER")
	}

	err = verifyClubLeader(ctx, d.clubRoleVerifier, req.ClubID, "Only leader can change roles")
	if err != nil {
		return nil, err
	}

	if req.MemberID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot change your own role")
	}

	join, err := d.getActiveJoin(ctx, req.MemberID, req.ClubID)
	if err != nil {
		return nil, err
	}

	if err := d.clubJoinRepo.UpdateByID(ctx, join.ID, map[string]any{"role": newRole}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot change role: %v", err)
		return nil, errorx.Wrap(err)
	}

	join.Role = newRole
	resp := model.ChangeClubMemberRoleResponse(model.ConvertClubJoin(join, nil, nil))
	return &resp, nil
}

func (d *clubJoinDomain) Kick(
	ctx context.Context, req *model.KickClubMemberRequest,
) (*model.KickClubMemberResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	caller, err := verifyClubRole(ctx, d.clubRoleVerifier, req.ClubID,
		"Only leader or managers can remove members", entity.ClubAdminGroup...)
	if err != nil {
		return nil, err
	}

	join, err := d.getActiveJoin(ctx, req.MemberID, req.ClubID)
	if err != nil {
		return nil, err
	}

	if !caller.Role.Outranks(join.Role) {
		return nil, errorx.New(errorx.PermissionDenied, "You can only remove members below your role")
	}

	if err := d.removeMember(ctx, join); err != nil {
		return nil, err
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.KickClubMemberResponse{}, nil
}

func (d *clubJoinDomain) Leave(
	ctx context.Context, req *model.LeaveClubRequest,
) (*model.LeaveClubResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	join, err := d.getActiveJoin(ctx, xcontext.RequestUserID(ctx), req.ClubID)
	if err != nil {
		return nil, err
	}

	if join.Role == entity.ClubRoleLeader {
		return nil, errorx.New(errorx.BadRequest, "Leader cannot leave the club")
	}

	if err := d.removeMember(ctx, join); err != nil {
		return nil, err
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.LeaveClubResponse{}, nil
}

func (d *clubJoinDomain) removeMember(ctx context.Context, join *entity.ClubJoin) error {
	if err := d.clubJoinRepo.UpdateByID(ctx, join.ID, map[string]any{"is_deleted": true}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove member: %v", err)
		return errorx.Wrap(err)
	}

	if err := d.clubRepo.DecreaseMemberCount(ctx, join.ClubID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease member count: %v", err)
		return errorx.Wrap(err)
	}

	return nil
}

func (d *clubJoinDomain) getClub(ctx context.Context, clubID int64) (*entity.Club, error) {
	club, err := d.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found club")
		}

		xcontext.Logger(ctx).Errorf("Cannot get club: %v", err)
		return nil, errorx.Wrap(err)
	}

	return club, nil
}

func (d *clubJoinDomain) getPendingJoin(ctx context.Context, userID, clubID int64) (*entity.ClubJoin, error) {
	join, err := d.clubJoinRepo.Get(ctx, userID, clubID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get club join: %v", err)
		return nil, errorx.Wrap(err)
	}

	if join == nil || join.IsDeleted || join.Status != entity.ClubJoinPending {
		return nil, errorx.New(errorx.NotFound, "Not found pending application")
	}

	return join, nil
}

func (d *clubJoinDomain) getActiveJoin(ctx context.Context, userID, clubID int64) (*entity.ClubJoin, error) {
	join, err := d.clubJoinRepo.GetActive(ctx, userID, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found club member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get club member: %v", err)
		return nil, errorx.Wrap(err)
	}

	return join, nil
}

// getLeaderID returns zero if the club has no active leader.
func (d *clubJoinDomain) getLeaderID(ctx context.Context, clubID int64) (int64, error) {
	joins, err := d.clubJoinRepo.GetListByClubID(ctx, repository.GetListClubJoinFilter{
		ClubID: clubID,
		Status: entity.ClubJoinActive,
		Limit:  1,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get club leader: %v", err)
		return 0, errorx.Wrap(err)
	}

	if len(joins) == 0 || joins[0].Role != entity.ClubRoleLeader {
		return 0, nil
	}

	return joins[0].UserID, nil
}

func convertClubJoinsWithUser(joins []entity.ClubJoin) []model.ClubJoin {
	result := []model.ClubJoin{}
	for i := range joins {
		user := model.ConvertShortUser(&joins[i].User)
		result = append(result, model.ConvertClubJoin(&joins[i], nil, &user))
	}

	return result
}
