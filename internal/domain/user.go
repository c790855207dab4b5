package domain

import (
	"context"
	"errors"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateMe(context.Context, *model.UpdateMeRequest) (*model.UpdateMeResponse, error)
	UpdatePassword(context.Context, *model.UpdatePasswordRequest) (*model.UpdatePasswordResponse, error)
	DeleteMe(context.Context, *model.DeleteMeRequest) (*model.DeleteMeResponse, error)
}

type userDomain struct {
	userRepo           repository.UserRepository
	clubRepo           repository.ClubRepository
	clubJoinRepo       repository.ClubJoinRepository
	postRepo           repository.PostRepository
	eventRepo          repository.EventRepository
	eventJoinRepo      repository.EventJoinRepository
	refreshSessionRepo repository.RefreshSessionRepository
	storage            storage.Storage
}

func NewUserDomain(
	userRepo repository.UserRepository,
	clubRepo repository.ClubRepository,
	clubJoinRepo repository.ClubJoinRepository,
	postRepo repository.PostRepository,
	eventRepo repository.EventRepository,
	eventJoinRepo repository.EventJoinRepository,
	refreshSessionRepo repository.RefreshSessionRepository,
	storage storage.Storage,
) UserDomain {
	return &userDomain{
		userRepo:           userRepo,
		clubRepo:           clubRepo,
		clubJoinRepo:       clubJoinRepo,
		postRepo:           postRepo,
		eventRepo:          eventRepo,
		eventJoinRepo:      eventJoinRepo,
		refreshSessionRepo: refreshSessionRepo,
		storage:            storage,
	}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) UpdateMe(
	ctx context.Context, req *model.UpdateMeRequest,
) (*model.UpdateMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Wrap(err)
	}

	update := map[string]any{}
	if req.Nickname != "" && req.Nickname != user.Nickname {
		exists, err := d.userRepo.ExistsByNickname(ctx, req.Nickname)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check nickname: %v", err)
			return nil, errorx.Wrap(err)
		}

		if exists {
			return nil, errorx.New(errorx.Conflict, "Nickname is already in use")
		}

		update["nickname"] = req.Nickname
		user.Nickname = req.Nickname
	}

	oldImage := ""
	if req.ProfileImage != nil && *req.ProfileImage != user.ProfileImage {
		if err := common.VerifyOwnImages(ctx, common.ImageProfile, "profile_image", *req.ProfileImage); err != nil {
			return nil, err
		}

		oldImage = user.ProfileImage
		update["profile_image"] = *req.ProfileImage
		user.ProfileImage = *req.ProfileImage
	}

	if len(update) > 0 {
		if err := d.userRepo.UpdateByID(ctx, user.ID, update); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
			return nil, errorx.Wrap(err)
		}
	}

	common.DeleteFile(ctx, d.storage, oldImage)

	resp := model.UpdateMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) UpdatePassword(
	ctx context.Context, req *model.UpdatePasswordRequest,
) (*model.UpdatePasswordResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Wrap(err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.userRepo.UpdateByID(ctx, user.ID, map[string]any{"password": string(hashed)}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update password: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.UpdatePasswordResponse{}, nil
}

// DeleteMe soft-deletes the user and everything the user owns in one
// transaction, then revokes the refresh session of user.
func (d *userDomain) DeleteMe(
	ctx context.Context, req *model.DeleteMeRequest,
) (*model.DeleteMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Wrap(err)
	}

	leadingClubs, err := d.clubJoinRepo.CountLeadingClubs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count leading clubs: %v", err)
		return nil, errorx.Wrap(err)
	}

	if leadingClubs > 0 {
		return nil, errorx.New(errorx.Conflict, "Delete or hand over your clubs before leaving")
	}

	common.DeleteFile(ctx, d.storage, user.ProfileImage)

	if err := d.postRepo.SoftDeleteByAuthorID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete posts of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.eventRepo.SoftDeleteByHostID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete events of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	clubIDs, err := d.clubJoinRepo.GetActiveClubIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get clubs of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	for _, clubID := range clubIDs {
		if err := d.clubRepo.DecreaseMemberCount(ctx, clubID); err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot decrease member count of club %d: %v", clubID, err)
			return nil, errorx.Wrap(err)
		}
	}

	if err := d.clubJoinRepo.SoftDeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete club joins of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.eventJoinRepo.SoftDeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event joins of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.userRepo.SoftDelete(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.refreshSessionRepo.Delete(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot revoke refresh session of deleted user %d: %v", userID, err)
	}

	return &model.DeleteMeResponse{}, nil
}
