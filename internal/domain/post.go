package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	Update(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
	GetHot(context.Context, *model.GetHotPostsRequest) (*model.GetHotPostsResponse, error)
	GetMyClub(context.Context, *model.GetMyClubPostsRequest) (*model.GetMyClubPostsResponse, error)
	GetClub(context.Context, *model.GetClubPostsRequest) (*model.GetClubPostsResponse, error)
	Like(context.Context, *model.LikePostRequest) (*model.LikePostResponse, error)
}

type postDomain struct {
	postRepo         repository.PostRepository
	postLikeRepo     repository.PostLikeRepository
	clubJoinRepo     repository.ClubJoinRepository
	clubRoleVerifier *common.ClubRoleVerifier
	storage          storage.Storage
}

func NewPostDomain(
	postRepo repository.PostRepository,
	postLikeRepo repository.PostLikeRepository,
	clubJoinRepo repository.ClubJoinRepository,
	storage storage.Storage,
) PostDomain {
	return &postDomain{
		postRepo:         postRepo,
		postLikeRepo:     postLikeRepo,
		clubJoinRepo:     clubJoinRepo,
		clubRoleVerifier: common.NewClubRoleVerifier(clubJoinRepo),
		storage:          storage,
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	scope, err := parseScope(req.Scope, req.ClubID)
	if err != nil {
		return nil, err
	}

	if err := common.VerifyOwnImages(ctx, common.ImagePost, "images", req.Images...); err != nil {
		return nil, err
	}

	post := &entity.Post{
		Base:     entity.Base{ID: newID(ctx)},
		AuthorID: xcontext.RequestUserID(ctx),
		Scope:    scope,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Images:   req.Images,
	}

	if scope == entity.ScopeClub {
		_, err := verifyClubRole(ctx, d.clubRoleVerifier, req.ClubID,
			"Only club members can post to the club", entity.ClubMemberGroup...)
		if err != nil {
			return nil, err
		}

		post.ClubID = sql.NullInt64{Int64: req.ClubID, Valid: true}
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Wrap(err)
	}

	post, err = d.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created post: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.CreatePostResponse(model.ConvertPost(post, model.ConvertShortUser(&post.Author), false))
	return &resp, nil
}

func (d *postDomain) Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error) {
	post, err := d.getVisiblePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if err := d.postRepo.IncreaseViewCount(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase view count: %v", err)
		return nil, errorx.Wrap(err)
	}
	post.ViewCount++

	isLiked, err := d.postLikeRepo.Exists(ctx, post.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked state: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.GetPostResponse(model.ConvertPost(post, model.ConvertShortUser(&post.Author), isLiked))
	return &resp, nil
}

func (d *postDomain) Update(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	post, err := d.getOwnPost(ctx, req.PostID, "Only author can update the post")
	if err != nil {
		return nil, err
	}

	update := map[string]any{}
	if req.Title != "" {
		update["title"] = req.Title
		post.Title = req.Title
	}

	if req.Content != "" {
		update["content"] = req.Content
		post.Content = req.Content
	}

	if req.Tags != nil {
		update["tags"] = entity.Array[string](req.Tags)
		post.Tags = req.Tags
	}

	if req.NewImages != nil || req.KeepImages != nil {
		images, err := common.ProcessImageUpdate(ctx, d.storage, common.ImagePost,
			post.Images, req.NewImages, req.KeepImages)
		if err != nil {
			return nil, err
		}

		post.Images = images
		update["images"] = post.Images
	}

	if len(update) > 0 {
		if err := d.postRepo.UpdateByID(ctx, post.ID, update); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
			return nil, errorx.Wrap(err)
		}
	}

	isLiked, err := d.postLikeRepo.Exists(ctx, post.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked state: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.UpdatePostResponse(model.ConvertPost(post, model.ConvertShortUser(&post.Author), isLiked))
	return &resp, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.getOwnPost(ctx, req.PostID, "Only author can delete the post")
	if err != nil {
		return nil, err
	}

	if err := d.postRepo.SoftDelete(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.DeletePostResponse{}, nil
}

func (d *postDomain) GetHot(
	ctx context.Context, req *model.GetHotPostsRequest,
) (*model.GetHotPostsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	clubIDs, err := d.clubJoinRepo.GetActiveClubIDs(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get clubs of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	result, err := d.postRepo.GetHotList(ctx, repository.HotPostFilter{
		Since:   time.Now().Add(-xcontext.Configs(ctx).Feed.HotWindow),
		ClubIDs: clubIDs,
		Offset:  req.Offset,
		Limit:   req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get hot posts: %v", err)
		return nil, errorx.Wrap(err)
	}

	posts, err := d.convertPosts(ctx, result)
	if err != nil {
		return nil, err
	}

	return &model.GetHotPostsResponse{Posts: posts}, nil
}

func (d *postDomain) GetMyClub(
	ctx context.Context, req *model.GetMyClubPostsRequest,
) (*model.GetMyClubPostsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	result, err := d.postRepo.GetListByMemberClubs(ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts of my clubs: %v", err)
		return nil, errorx.Wrap(err)
	}

	posts, err := d.convertPosts(ctx, result)
	if err != nil {
		return nil, err
	}

	return &model.GetMyClubPostsResponse{Posts: posts}, nil
}

func (d *postDomain) GetClub(
	ctx context.Context, req *model.GetClubPostsRequest,
) (*model.GetClubPostsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	_, err := verifyClubRole(ctx, d.clubRoleVerifier, req.ClubID,
		"Only club members can see posts of the club", entity.ClubMemberGroup...)
	if err != nil {
		return nil, err
	}

	result, err := d.postRepo.GetListByClubID(ctx, req.ClubID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts of club: %v", err)
		return nil, errorx.Wrap(err)
	}

	posts, err := d.convertPosts(ctx, result)
	if err != nil {
		return nil, err
	}

	return &model.GetClubPostsResponse{Posts: posts}, nil
}

// Like toggles the like of user on the post.
func (d *postDomain) Like(ctx context.Context, req *model.LikePostRequest) (*model.LikePostResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	post, err := d.getVisiblePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	isLiked, err := d.postLikeRepo.Exists(ctx, post.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked state: %v", err)
		return nil, errorx.Wrap(err)
	}

	if isLiked {
		if err := d.postLikeRepo.Delete(ctx, post.ID, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unlike post: %v", err)
			return nil, errorx.Wrap(err)
		}

		if err := d.postRepo.DecreaseLikeCount(ctx, post.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease like count: %v", err)
			return nil, errorx.Wrap(err)
		}
		post.LikeCount--
	} else {
		if err := d.postLikeRepo.Create(ctx, &entity.PostLike{PostID: post.ID, UserID: userID}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot like post: %v", err)
			return nil, errorx.Wrap(err)
		}

		if err := d.postRepo.IncreaseLikeCount(ctx, post.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase like count: %v", err)
			return nil, errorx.Wrap(err)
		}
		post.LikeCount++
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.LikePostResponse{IsLiked: !isLiked, LikeCount: post.LikeCount}, nil
}

// getVisiblePost returns the post if the user can read it, club posts are only
// visible to club members.
func (d *postDomain) getVisiblePost(ctx context.Context, postID int64) (*entity.Post, error) {
	post, err := d.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Wrap(err)
	}

	if post.Scope == entity.ScopeClub {
		_, err := verifyClubRole(ctx, d.clubRoleVerifier, post.ClubID.Int64,
			"Only club members can see the post", entity.ClubMemberGroup...)
		if err != nil {
			return nil, err
		}
	}

	return post, nil
}

func (d *postDomain) getOwnPost(ctx context.Context, postID int64, denyMsg string) (*entity.Post, error) {
	post, err := d.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Wrap(err)
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, denyMsg)
	}

	return post, nil
}

// convertPosts merges the liked state of user into the page of posts with one
// lookup.
func (d *postDomain) convertPosts(ctx context.Context, posts []entity.Post) ([]model.Post, error) {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	likedIDs, err := d.postLikeRepo.GetLikedPostIDs(ctx, xcontext.RequestUserID(ctx), ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked posts: %v", err)
		return nil, errorx.Wrap(err)
	}

	liked := toSet(likedIDs)
	result := []model.Post{}
	for i := range posts {
		result = append(result, model.ConvertPost(
			&posts[i], model.ConvertShortUser(&posts[i].Author), liked[posts[i].ID]))
	}

	return result, nil
}
