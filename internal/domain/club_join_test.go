package domain

import (
	"context"
	"testing"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// activityRecorder collects the activities published by domains.
type activityRecorder struct {
	activities []model.ActivityEvent
}

func (r *activityRecorder) publisher() pubsub.Publisher {
	return &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			var activity model.ActivityEvent
			if err := pack.Decode(&activity); err != nil {
				return err
			}

			r.activities = append(r.activities, activity)
			return nil
		},
	}
}

func newTestClubJoinDomain(recorder *activityRecorder) ClubJoinDomain {
	return NewClubJoinDomain(
		repository.NewClubRepository(),
		repository.NewClubJoinRepository(),
		recorder.publisher(),
	)
}

func Test_clubJoinDomain_Apply(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		clubID  int64
		wantErr errorx.Code
	}{
		{
			name:   "new applicant",
			userID: testutil.User4.ID,
			clubID: testutil.Club1.ID,
		},
		{
			name:    "already pending",
			userID:  testutil.User3.ID,
			clubID:  testutil.Club1.ID,
			wantErr: errorx.Conflict,
		},
		{
			name:    "already member",
			userID:  testutil.User2.ID,
			clubID:  testutil.Club1.ID,
			wantErr: errorx.Conflict,
		},
		{
			name:    "club not found",
			userID:  testutil.User4.ID,
			clubID:  999,
			wantErr: errorx.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tt.userID)
			testutil.CreateFixtureDb(ctx)

			recorder := &activityRecorder{}
			resp, err := newTestClubJoinDomain(recorder).Apply(ctx, &model.ApplyClubRequest{ClubID: tt.clubID})
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				require.Empty(t, recorder.activities)
				return
			}

			require.NoError(t, err)
			require.Equal(t, string(entity.ClubJoinPending), resp.Status)
			require.Len(t, recorder.activities, 1)
			require.Equal(t, testutil.User1.ID, recorder.activities[0].RecipientID)
			require.Equal(t, string(entity.NotificationClubApplied), recorder.activities[0].Type)
		})
	}
}

func Test_clubJoinDomain_ApproveAndReject(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	recorder := &activityRecorder{}
	domain := newTestClubJoinDomain(recorder)

	_, err := domain.Approve(ctx, &model.ApproveClubApplicationRequest{
		ClubID:      testutil.Club1.ID,
		ApplicantID: testutil.User3.ID,
	})
	requireErrorCode(t, err, errorx.PermissionDenied)

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.Approve(ctx, &model.ApproveClubApplicationRequest{
		ClubID:      testutil.Club1.ID,
		ApplicantID: testutil.User3.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.ClubJoinActive), resp.Status)

	club, err := repository.NewClubRepository().GetByID(ctx, testutil.Club1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), club.MemberCount)

	// The application is not pending anymore.
	_, err = domain.Reject(ctx, &model.RejectClubApplicationRequest{
		ClubID:      testutil.Club1.ID,
		ApplicantID: testutil.User3.ID,
	})
	requireErrorCode(t, err, errorx.NotFound)

	require.Len(t, recorder.activities, 1)
	require.Equal(t, testutil.User3.ID, recorder.activities[0].RecipientID)
}

func Test_clubJoinDomain_RejectThenReapply(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestClubJoinDomain(&activityRecorder{})

	_, err := domain.Reject(ctx, &model.RejectClubApplicationRequest{
		ClubID:      testutil.Club1.ID,
		ApplicantID: testutil.User3.ID,
	})
	require.NoError(t, err)

	applicantCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	status, err := domain.GetMyStatus(applicantCtx, &model.GetMyClubStatusRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.ClubJoinRejected), status.Status)

	resp, err := domain.Apply(applicantCtx, &model.ApplyClubRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.ClubJoin3.ID, resp.ID)
	require.Equal(t, string(entity.ClubJoinPending), resp.Status)
}

func Test_clubJoinDomain_CancelApplication(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestClubJoinDomain(&activityRecorder{})

	_, err := domain.CancelApplication(ctx, &model.CancelClubApplicationRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)

	status, err := domain.GetMyStatus(ctx, &model.GetMyClubStatusRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Equal(t, "NONE", status.Status)

	_, err = domain.CancelApplication(ctx, &model.CancelClubApplicationRequest{ClubID: testutil.Club1.ID})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_clubJoinDomain_GetApplicationsAndMembers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestClubJoinDomain(&activityRecorder{})

	applications, err := domain.GetApplications(ctx, &model.GetClubApplicationsRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Len(t, applications.Applications, 1)
	require.Equal(t, testutil.User3.Nickname, applications.Applications[0].User.Nickname)

	members, err := domain.GetMembers(ctx, &model.GetClubMembersRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Len(t, members.Members, 2)
	require.Equal(t, string(entity.ClubRoleLeader), members.Members[0].Role)
	require.Equal(t, testutil.User2.ID, members.Members[1].User.ID)

	_, err = domain.GetApplications(xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.GetClubApplicationsRequest{ClubID: testutil.Club1.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)
}

func Test_clubJoinDomain_ChangeRole(t *testing.T) {
	tests := []struct {
		name     string
		userID   int64
		memberID int64
		newRole  string
		wantErr  errorx.Code
	}{
		{
			name:     "promote member to manager",
			userID:   testutil.User1.ID,
			memberID: testutil.User2.ID,
			newRole:  string(entity.ClubRoleManager),
		},
		{
			name:     "cannot hand over leader",
			userID:   testutil.User1.ID,
			memberID: testutil.User2.ID,
			newRole:  string(entity.ClubRoleLeader),
			wantErr:  errorx.BadRequest,
		},
		{
			name:     "member cannot change roles",
			userID:   testutil.User2.ID,
			memberID: testutil.User1.ID,
			newRole:  string(entity.ClubRoleMember),
			wantErr:  errorx.PermissionDenied,
		},
		{
			name:     "pending applicant is not a member",
			userID:   testutil.User1.ID,
			memberID: testutil.User3.ID,
			newRole:  string(entity.ClubRoleManager),
			wantErr:  errorx.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tt.userID)
			testutil.CreateFixtureDb(ctx)

			resp, err := newTestClubJoinDomain(&activityRecorder{}).ChangeRole(ctx,
				&model.ChangeClubMemberRoleRequest{
					ClubID:   testutil.Club1.ID,
					MemberID: tt.memberID,
					NewRole:  tt.newRole,
				})
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.newRole, resp.Role)
		})
	}
}

func Test_clubJoinDomain_KickAndLeave(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestClubJoinDomain(&activityRecorder{})

	// A member cannot kick and the leader cannot leave.
	_, err := domain.Kick(ctx, &model.KickClubMemberRequest{ClubID: testutil.Club1.ID, MemberID: testutil.User1.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	leaderCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.Leave(leaderCtx, &model.LeaveClubRequest{ClubID: testutil.Club1.ID})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = domain.Kick(leaderCtx, &model.KickClubMemberRequest{ClubID: testutil.Club1.ID, MemberID: testutil.User2.ID})
	require.NoError(t, err)

	club, err := repository.NewClubRepository().GetByID(ctx, testutil.Club1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), club.MemberCount)

	_, err = domain.Leave(ctx, &model.LeaveClubRequest{ClubID: testutil.Club1.ID})
	requireErrorCode(t, err, errorx.NotFound)

	// A removed member may apply again.
	resp, err := domain.Apply(ctx, &model.ApplyClubRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.ClubJoin2.ID, resp.ID)
}

func Test_clubJoinDomain_Leave(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestClubJoinDomain(&activityRecorder{})

	_, err := domain.Leave(ctx, &model.LeaveClubRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)

	status, err := domain.GetMyStatus(ctx, &model.GetMyClubStatusRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Equal(t, "NONE", status.Status)
}
