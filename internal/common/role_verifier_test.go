package common_test

import (
	"testing"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestClubRoleVerifier_Verify(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		roles   []entity.ClubRole
		wantErr error
	}{
		{
			name:   "leader has admin authority",
			userID: testutil.User1.ID,
			roles:  entity.ClubAdminGroup,
		},
		{
			name:    "member has no admin authority",
			userID:  testutil.User2.ID,
			roles:   entity.ClubAdminGroup,
			wantErr: common.ErrClubRoleDenied,
		},
		{
			name:   "member has member authority",
			userID: testutil.User2.ID,
			roles:  entity.ClubMemberGroup,
		},
		{
			name:    "pending applicant is not a member",
			userID:  testutil.User3.ID,
			roles:   entity.ClubMemberGroup,
			wantErr: common.ErrNotClubMember,
		},
		{
			name:    "stranger is not a member",
			userID:  testutil.User4.ID,
			roles:   entity.ClubMemberGroup,
			wantErr: common.ErrNotClubMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)
			ctx = xcontext.WithRequestUserID(ctx, tt.userID)

			verifier := common.NewClubRoleVerifier(repository.NewClubJoinRepository())
			join, err := verifier.Verify(ctx, testutil.Club1.ID, tt.roles...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.userID, join.UserID)
		})
	}
}

func TestClubRoleVerifier_IsLeader(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	verifier := common.NewClubRoleVerifier(repository.NewClubJoinRepository())

	require.NoError(t, verifier.IsLeader(xcontext.WithRequestUserID(ctx, testutil.User1.ID), testutil.Club1.ID))
	require.ErrorIs(t, verifier.IsLeader(xcontext.WithRequestUserID(ctx, testutil.User2.ID), testutil.Club1.ID),
		common.ErrClubRoleDenied)
}
