package domain

import (
	"testing"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestCommentDomain(recorder *activityRecorder) CommentDomain {
	return NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewPostRepository(),
		repository.NewEventRepository(),
		repository.NewClubJoinRepository(),
		recorder.publisher(),
	)
}

func Test_commentDomain_CreateOnPost(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		postID  int64
		wantErr errorx.Code
	}{
		{
			name:   "global post",
			userID: testutil.User3.ID,
			postID: testutil.Post1.ID,
		},
		{
			name:   "club post by member",
			userID: testutil.User1.ID,
			postID: testutil.Post2.ID,
		},
		{
			name:    "club post by outsider",
			userID:  testutil.User1.ID,
			postID:  testutil.Post3.ID,
			wantErr: errorx.PermissionDenied,
		},
		{
			name:    "unknown post",
			userID:  testutil.User1.ID,
			postID:  999,
			wantErr: errorx.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tt.userID)
			testutil.CreateFixtureDb(ctx)
			recorder := &activityRecorder{}

			resp, err := newTestCommentDomain(recorder).CreateOnPost(ctx, &model.CreatePostCommentRequest{
				PostID:  tt.postID,
				Content: "Clean hits",
			})
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.postID, resp.PostID)
			require.Equal(t, tt.userID, resp.Author.ID)

			require.Len(t, recorder.activities, 1)
			require.Equal(t, string(entity.NotificationCommented), recorder.activities[0].Type)
		})
	}
}

func Test_commentDomain_CreateOnEvent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	recorder := &activityRecorder{}
	domain := newTestCommentDomain(recorder)

	resp, err := domain.CreateOnEvent(ctx, &model.CreateEventCommentRequest{
		EventID: testutil.Event1.ID,
		Content: "See you there",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Event1.ID, resp.EventID)

	// The host comments on their own event.
	require.Empty(t, recorder.activities)

	_, err = domain.CreateOnEvent(xcontext.WithRequestUserID(ctx, testutil.User4.ID),
		&model.CreateEventCommentRequest{EventID: testutil.Event2.ID, Content: "Hi"})
	requireErrorCode(t, err, errorx.PermissionDenied)

	list, err := domain.GetListOfEvent(ctx, &model.GetEventCommentsRequest{EventID: testutil.Event1.ID})
	require.NoError(t, err)
	require.Len(t, list.Comments, 1)
}

func Test_commentDomain_GetListOfPost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestCommentDomain(&activityRecorder{})

	_, err := domain.CreateOnPost(ctx, &model.CreatePostCommentRequest{PostID: testutil.Post1.ID, Content: "Thanks"})
	require.NoError(t, err)

	resp, err := domain.GetListOfPost(ctx, &model.GetPostCommentsRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 2)
	require.Equal(t, testutil.Comment1.ID, resp.Comments[0].ID)
	require.Equal(t, "Thanks", resp.Comments[1].Content)

	_, err = domain.GetListOfPost(ctx, &model.GetPostCommentsRequest{PostID: testutil.Post1.ID, Limit: 100})
	requireErrorCode(t, err, errorx.BadRequest)
}

func Test_commentDomain_UpdateDelete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestCommentDomain(&activityRecorder{})

	_, err := domain.Update(ctx, &model.UpdateCommentRequest{CommentID: testutil.Comment1.ID, Content: "Mine"})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = domain.Delete(ctx, &model.DeleteCommentRequest{CommentID: testutil.Comment1.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	authorCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := domain.Update(authorCtx, &model.UpdateCommentRequest{CommentID: testutil.Comment1.ID, Content: "Very nice"})
	require.NoError(t, err)
	require.Equal(t, "Very nice", resp.Content)

	_, err = domain.Delete(authorCtx, &model.DeleteCommentRequest{CommentID: testutil.Comment1.ID})
	require.NoError(t, err)

	_, err = domain.Delete(authorCtx, &model.DeleteCommentRequest{CommentID: testutil.Comment1.ID})
	requireErrorCode(t, err, errorx.NotFound)
}
