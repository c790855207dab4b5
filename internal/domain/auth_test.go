package domain

import (
	"testing"

	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestAuthDomain() AuthDomain {
	return NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshSessionRepository(testutil.NewMockRedisClient()),
	)
}

func Test_authDomain_SignUp(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.SignUpRequest
		wantErr errorx.Code
	}{
		{
			name: "happy case",
			req: &model.SignUpRequest{
				Email:    "new@groove.dev",
				Password: "password123",
				Nickname: "newbie",
			},
		},
		{
			name: "duplicated email",
			req: &model.SignUpRequest{
				Email:    testutil.User1.Email,
				Password: "password123",
				Nickname: "newbie",
			},
			wantErr: errorx.Conflict,
		},
		{
			name: "duplicated nickname",
			req: &model.SignUpRequest{
				Email:    "new@groove.dev",
				Password: "password123",
				Nickname: testutil.User1.Nickname,
			},
			wantErr: errorx.Conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)

			resp, err := newTestAuthDomain().SignUp(ctx, tt.req)
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.req.Email, resp.Email)

			user, err := repository.NewUserRepository().GetByID(ctx, resp.ID)
			require.NoError(t, err)
			require.NotEqual(t, tt.req.Password, user.Password)
		})
	}
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestAuthDomain()

	_, err := domain.Login(ctx, &model.LoginRequest{
		Email:    testutil.User1.Email,
		Password: "wrong-password",
	})
	requireErrorCode(t, err, errorx.Unauthenticated)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "nobody@groove.dev",
		Password: testutil.Password,
	})
	requireErrorCode(t, err, errorx.Unauthenticated)

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    testutil.User1.Email,
		Password: testutil.Password,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)

	var token model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &token))
	require.Equal(t, testutil.User1.ID, token.ID)
	require.Equal(t, testutil.User1.Nickname, token.Nickname)
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestAuthDomain()

	login, err := domain.Login(ctx, &model.LoginRequest{
		Email:    testutil.User2.Email,
		Password: testutil.Password,
	})
	require.NoError(t, err)

	refreshed, err := domain.Refresh(ctx, &model.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// Replaying the first token revokes the session.
	_, err = domain.Refresh(ctx, &model.RefreshRequest{RefreshToken: login.RefreshToken})
	requireErrorCode(t, err, errorx.StolenDetected)

	_, err = domain.Refresh(ctx, &model.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	requireErrorCode(t, err, errorx.Unauthenticated)

	_, err = domain.Refresh(ctx, &model.RefreshRequest{RefreshToken: "invalid"})
	requireErrorCode(t, err, errorx.Unauthenticated)
}

func Test_authDomain_Logout(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestAuthDomain()

	login, err := domain.Login(ctx, &model.LoginRequest{
		Email:    testutil.User2.Email,
		Password: testutil.Password,
	})
	require.NoError(t, err)

	_, err = domain.Logout(xcontext.WithRequestUserID(ctx, testutil.User2.ID), &model.LogoutRequest{})
	require.NoError(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshRequest{RefreshToken: login.RefreshToken})
	requireErrorCode(t, err, errorx.Unauthenticated)
}
