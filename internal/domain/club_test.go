package domain

import (
	"context"
	"testing"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestClubDomain(fileStorage storage.Storage) ClubDomain {
	if fileStorage == nil {
		fileStorage = &testutil.MockStorage{}
	}

	return NewClubDomain(
		repository.NewClubRepository(),
		repository.NewClubJoinRepository(),
		repository.NewPostRepository(),
		repository.NewEventRepository(),
		repository.NewEventJoinRepository(),
		fileStorage,
	)
}

func Test_clubDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestClubDomain(nil)

	_, err := domain.Create(ctx, &model.CreateClubRequest{Name: "Locking", Type: "GANG"})
	requireErrorCode(t, err, errorx.BadRequest)

	resp, err := domain.Create(ctx, &model.CreateClubRequest{
		Name: "Locking",
		Type: string(entity.ClubTypeCrew),
		Tags: []string{"locking"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.MemberCount)
	require.Equal(t, []string{"locking"}, resp.Tags)

	join, err := repository.NewClubJoinRepository().GetActive(ctx, testutil.User3.ID, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ClubRoleLeader, join.Role)
}

func Test_clubDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestClubDomain(nil)

	tests := []struct {
		name    string
		req     *model.GetClubsRequest
		want    []int64
		wantErr errorx.Code
	}{
		{
			name: "ordered by member count",
			req:  &model.GetClubsRequest{},
			want: []int64{testutil.Club1.ID, testutil.Club2.ID},
		},
		{
			name: "search by name",
			req:  &model.GetClubsRequest{Q: "Breaking"},
			want: []int64{testutil.Club2.ID},
		},
		{
			name:    "exceed limit",
			req:     &model.GetClubsRequest{Limit: 51},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "negative offset",
			req:     &model.GetClubsRequest{Offset: -1},
			wantErr: errorx.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := domain.GetList(ctx, tt.req)
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			var got []int64
			for _, c := range resp.Clubs {
				got = append(got, c.ID)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_clubDomain_Update(t *testing.T) {
	newImage := "/uploads/clubs/1/new.png"
	foreignImage := "/uploads/clubs/2/new.png"
	intro := "New intro"

	tests := []struct {
		name        string
		userID      int64
		req         *model.UpdateClubRequest
		wantErr     errorx.Code
		wantDeleted []string
	}{
		{
			name:   "leader updates club",
			userID: testutil.User1.ID,
			req: &model.UpdateClubRequest{
				ClubID: testutil.Club1.ID,
				Intro:  &intro,
				Image:  &newImage,
			},
			wantDeleted: []string{testutil.Club1.Image},
		},
		{
			name:   "image of another user",
			userID: testutil.User1.ID,
			req: &model.UpdateClubRequest{
				ClubID: testutil.Club1.ID,
				Image:  &foreignImage,
			},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "member cannot update",
			userID:  testutil.User2.ID,
			req:     &model.UpdateClubRequest{ClubID: testutil.Club1.ID, Intro: &intro},
			wantErr: errorx.PermissionDenied,
		},
		{
			name:    "club not found",
			userID:  testutil.User1.ID,
			req:     &model.UpdateClubRequest{ClubID: 999, Intro: &intro},
			wantErr: errorx.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tt.userID)
			testutil.CreateFixtureDb(ctx)

			var deleted []string
			domain := newTestClubDomain(&testutil.MockStorage{
				DeleteFunc: func(ctx context.Context, url string) error {
					deleted = append(deleted, url)
					return nil
				},
			})

			resp, err := domain.Update(ctx, tt.req)
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				require.Empty(t, deleted)
				return
			}

			require.NoError(t, err)
			require.Equal(t, intro, resp.Intro)
			require.Equal(t, newImage, resp.Image)
			require.Equal(t, tt.wantDeleted, deleted)
		})
	}
}

func Test_clubDomain_DeleteImage(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	called := 0
	domain := newTestClubDomain(&testutil.MockStorage{
		DeleteFunc: func(ctx context.Context, url string) error {
			called++
			return nil
		},
	})

	_, err := domain.DeleteImage(ctx, &model.DeleteClubImageRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Equal(t, 1, called)

	club, err := repository.NewClubRepository().GetByID(ctx, testutil.Club1.ID)
	require.NoError(t, err)
	require.Empty(t, club.Image)

	// Nothing to delete the second time.
	_, err = domain.DeleteImage(ctx, &model.DeleteClubImageRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)
	require.Equal(t, 1, called)
}

func Test_clubDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)

	// The storage failure must not abort the deletion.
	domain := newTestClubDomain(&testutil.MockStorage{
		DeleteFunc: func(ctx context.Context, url string) error {
			return context.DeadlineExceeded
		},
	})

	_, err := domain.Delete(ctx, &model.DeleteClubRequest{ClubID: testutil.Club1.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.Delete(ctx, &model.DeleteClubRequest{ClubID: testutil.Club1.ID})
	require.NoError(t, err)

	db := xcontext.DB(ctx)

	var club entity.Club
	require.NoError(t, db.Take(&club, testutil.Club1.ID).Error)
	require.True(t, club.IsDeleted)

	var post entity.Post
	require.NoError(t, db.Take(&post, testutil.Post2.ID).Error)
	require.True(t, post.IsDeleted)

	var event entity.Event
	require.NoError(t, db.Take(&event, testutil.Event2.ID).Error)
	require.True(t, event.IsDeleted)

	var activeJoins int64
	require.NoError(t, db.Model(&entity.ClubJoin{}).
		Where("club_id=? AND is_deleted=?", testutil.Club1.ID, false).
		Count(&activeJoins).Error)
	require.Zero(t, activeJoins)

	// Content outside of the club is untouched.
	require.NoError(t, db.Take(&post, testutil.Post1.ID).Error)
	require.False(t, post.IsDeleted)
	require.NoError(t, db.Take(&event, testutil.Event1.ID).Error)
	require.False(t, event.IsDeleted)

	_, err = domain.Get(ctx, &model.GetClubRequest{ClubID: testutil.Club1.ID})
	requireErrorCode(t, err, errorx.NotFound)

	posts, err := repository.NewPostRepository().GetListByClubID(ctx, testutil.Club1.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func Test_clubDomain_GetMyClubs(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)

	resp, err := newTestClubDomain(nil).GetMyClubs(ctx, &model.GetMyClubsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Clubs, 1)
	require.Equal(t, string(entity.ClubJoinPending), resp.Clubs[0].Status)
	require.Equal(t, testutil.Club1.Name, resp.Clubs[0].Club.Name)
}
