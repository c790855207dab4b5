package domain

import (
	"context"
	"errors"
	"time"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/crypto"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const refreshFamilySize = 32

type AuthDomain interface {
	SignUp(context.Context, *model.SignUpRequest) (*model.SignUpResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(context.Context, *model.RefreshRequest) (*model.RefreshResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo           repository.UserRepository
	refreshSessionRepo repository.RefreshSessionRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshSessionRepo repository.RefreshSessionRepository,
) AuthDomain {
	return &authDomain{
		userRepo:           userRepo,
		refreshSessionRepo: refreshSessionRepo,
	}
}

func (d *authDomain) SignUp(
	ctx context.Context, req *model.SignUpRequest,
) (*model.SignUpResponse, error) {
	exists, err := d.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check email: %v", err)
		return nil, errorx.Wrap(err)
	}

	if exists {
		return nil, errorx.New(errorx.Conflict, "Email is already in use")
	}

	exists, err = d.userRepo.ExistsByNickname(ctx, req.Nickname)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check nickname: %v", err)
		return nil, errorx.Wrap(err)
	}

	if exists {
		return nil, errorx.New(errorx.Conflict, "Nickname is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Wrap(err)
	}

	user := &entity.User{
		Base:     entity.Base{ID: newID(ctx)},
		Email:    req.Email,
		Password: string(hashed),
		Nickname: req.Nickname,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.SignUpResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Wrap(err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	accessToken, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Wrap(err)
	}

	refreshToken, err := d.generateRefreshToken(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.ConvertUser(user, true),
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshRequest,
) (*model.RefreshResponse, error) {
	// Verify the refresh token from client.
	refreshToken := model.RefreshToken{}
	err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &refreshToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Failed to verify refresh token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	session, err := d.refreshSessionRepo.Get(ctx, refreshToken.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Your session is revoked")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh session: %v", err)
		return nil, errorx.Wrap(err)
	}

	if session.Expiration.Before(time.Now()) {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	// A token of an old family or an already used counter means the token was
	// replayed, the whole session is revoked.
	if crypto.Fingerprint(refreshToken.Family) != session.Family ||
		refreshToken.Counter != session.Counter {
		if err := d.refreshSessionRepo.Delete(ctx, refreshToken.UserID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete refresh session: %v", err)
			return nil, errorx.Wrap(err)
		}

		return nil, errorx.New(errorx.StolenDetected,
			"Your refresh token will be revoked because it is detected as stolen")
	}

	user, err := d.userRepo.GetByID(ctx, refreshToken.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "User is no longer available")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.refreshSessionRepo.Rotate(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate the refresh session: %v", err)
		return nil, errorx.Wrap(err)
	}

	newRefreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			UserID:  user.ID,
			Family:  refreshToken.Family,
			Counter: refreshToken.Counter + 1,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Wrap(err)
	}

	newAccessToken, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.RefreshResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	if err := d.refreshSessionRepo.Delete(ctx, xcontext.RequestUserID(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete refresh session: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.LogoutResponse{}, nil
}

func (d *authDomain) generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	return xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:       user.ID,
			Email:    user.Email,
			Nickname: user.Nickname,
		})
}

// generateRefreshToken starts a new token family, the previous session of
// user is replaced.
func (d *authDomain) generateRefreshToken(ctx context.Context, userID int64) (string, error) {
	family, err := crypto.RandomToken(refreshFamilySize)
	if err != nil {
		return "", err
	}

	expiration := xcontext.Configs(ctx).Auth.RefreshToken.Expiration
	refreshToken, err := xcontext.TokenEngine(ctx).Generate(expiration, model.RefreshToken{
		UserID:  userID,
		Family:  family,
		Counter: 0,
	})
	if err != nil {
		return "", err
	}

	err = d.refreshSessionRepo.Create(ctx, userID, &repository.RefreshSession{
		Family:     crypto.Fingerprint(family),
		Counter:    0,
		Expiration: time.Now().Add(expiration),
	})
	if err != nil {
		return "", err
	}

	return refreshToken, nil
}
