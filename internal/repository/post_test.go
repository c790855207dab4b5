package repository_test

import (
	"testing"
	"time"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetHotList(t *testing.T) {
	tests := []struct {
		name    string
		clubIDs []int64
		want    []int64
	}{
		{
			name: "global posts only",
			want: []int64{testutil.Post1.ID},
		},
		{
			name:    "global and member club posts",
			clubIDs: []int64{testutil.Club1.ID},
			want:    []int64{testutil.Post1.ID, testutil.Post2.ID},
		},
		{
			name:    "all clubs",
			clubIDs: []int64{testutil.Club1.ID, testutil.Club2.ID},
			want:    []int64{testutil.Post3.ID, testutil.Post1.ID, testutil.Post2.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)

			posts, err := repository.NewPostRepository().GetHotList(ctx, repository.HotPostFilter{
				Since:   time.Now().Add(-14 * 24 * time.Hour),
				ClubIDs: tt.clubIDs,
				Limit:   10,
			})
			require.NoError(t, err)

			var got []int64
			for _, p := range posts {
				got = append(got, p.ID)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPostRepository_GetListByMemberClubs(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	postRepo := repository.NewPostRepository()

	posts, err := postRepo.GetListByMemberClubs(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, testutil.Post2.ID, posts[0].ID)
	require.Equal(t, testutil.User2.Nickname, posts[0].Author.Nickname)

	// Pending applicants see nothing.
	posts, err = postRepo.GetListByMemberClubs(ctx, testutil.User3.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestPostRepository_LikeCount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	postRepo := repository.NewPostRepository()
	require.NoError(t, postRepo.IncreaseLikeCount(ctx, testutil.Post4.ID))
	require.NoError(t, postRepo.DecreaseLikeCount(ctx, testutil.Post4.ID))

	post, err := postRepo.GetByID(ctx, testutil.Post4.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), post.LikeCount)

	require.NoError(t, postRepo.SoftDelete(ctx, testutil.Post4.ID))
	_, err = postRepo.GetByID(ctx, testutil.Post4.ID)
	require.Error(t, err)
}

func TestPostRepository_SoftDeleteByClubID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	postRepo := repository.NewPostRepository()
	require.NoError(t, postRepo.SoftDeleteByClubID(ctx, testutil.Club1.ID))

	posts, err := postRepo.GetListByClubID(ctx, testutil.Club1.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, posts)

	posts, err = postRepo.GetListByClubID(ctx, testutil.Club2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	var global entity.Post
	require.NoError(t, ctxDB(ctx).Take(&global, testutil.Post1.ID).Error)
	require.False(t, global.IsDeleted)
}
