package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentDomain interface {
	CreateOnPost(context.Context, *model.CreatePostCommentRequest) (*model.CreateCommentResponse, error)
	CreateOnEvent(context.Context, *model.CreateEventCommentRequest) (*model.CreateCommentResponse, error)
	GetListOfPost(context.Context, *model.GetPostCommentsRequest) (*model.GetCommentsResponse, error)
	GetListOfEvent(context.Context, *model.GetEventCommentsRequest) (*model.GetCommentsResponse, error)
	Update(context.Context, *model.UpdateCommentRequest) (*model.UpdateCommentResponse, error)
	Delete(context.Context, *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	eventRepo        repository.EventRepository
	clubRoleVerifier *common.ClubRoleVerifier
	publisher        pubsub.Publisher
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	eventRepo repository.EventRepository,
	clubJoinRepo repository.ClubJoinRepository,
	publisher pubsub.Publisher,
) CommentDomain {
	return &commentDomain{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		eventRepo:        eventRepo,
		clubRoleVerifier: common.NewClubRoleVerifier(clubJoinRepo),
		publisher:        publisher,
	}
}

func (d *commentDomain) CreateOnPost(
	ctx context.Context, req *model.CreatePostCommentRequest,
) (*model.CreateCommentResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	comment, err := d.create(ctx, &entity.Comment{
		PostID:  sql.NullInt64{Int64: post.ID, Valid: true},
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}

	common.PublishActivity(ctx, d.publisher, entity.NotificationCommented, post.AuthorID, post.ID,
		"%s commented on your post", comment.Author.Nickname)

	resp := model.CreateCommentResponse(model.ConvertComment(comment, model.ConvertShortUser(&comment.Author)))
	return &resp, nil
}

func (d *commentDomain) CreateOnEvent(
	ctx context.Context, req *model.CreateEventCommentRequest,
) (*model.CreateCommentResponse, error) {
	event, err := d.getEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	comment, err := d.create(ctx, &entity.Comment{
		EventID: sql.NullInt64{Int64: event.ID, Valid: true},
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}

	common.PublishActivity(ctx, d.publisher, entity.NotificationCommented, event.HostID, event.ID,
		"%s commented on your event", comment.Author.Nickname)

	resp := model.CreateCommentResponse(model.ConvertComment(comment, model.ConvertShortUser(&comment.Author)))
	return &resp, nil
}

func (d *commentDomain) GetListOfPost(
	ctx context.Context, req *model.GetPostCommentsRequest,
) (*model.GetCommentsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	if _, err := d.getPost(ctx, req.PostID); err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, req.PostID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments of post: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.GetCommentsResponse{Comments: convertComments(comments)}, nil
}

func (d *commentDomain) GetListOfEvent(
	ctx context.Context, req *model.GetEventCommentsRequest,
) (*model.GetCommentsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	if _, err := d.getEvent(ctx, req.EventID); err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetListByEventID(ctx, req.EventID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments of event: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.GetCommentsResponse{Comments: convertComments(comments)}, nil
}

func (d *commentDomain) Update(
	ctx context.Context, req *model.UpdateCommentRequest,
) (*model.UpdateCommentResponse, error) {
	comment, err := d.getOwnComment(ctx, req.CommentID, "Only author can update the comment")
	if err != nil {
		return nil, err
	}

	if err := d.commentRepo.UpdateByID(ctx, comment.ID, map[string]any{"content": req.Content}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment: %v", err)
		return nil, errorx.Wrap(err)
	}

	comment, err = d.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get updated comment: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.UpdateCommentResponse(model.ConvertComment(comment, model.ConvertShortUser(&comment.Author)))
	return &resp, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.getOwnComment(ctx, req.CommentID, "Only author can delete the comment")
	if err != nil {
		return nil, err
	}

	if err := d.commentRepo.SoftDelete(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.DeleteCommentResponse{}, nil
}

func (d *commentDomain) create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	comment.ID = newID(ctx)
	comment.AuthorID = xcontext.RequestUserID(ctx)

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Wrap(err)
	}

	result, err := d.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created comment: %v", err)
		return nil, errorx.Wrap(err)
	}

	return result, nil
}

func (d *commentDomain) getPost(ctx context.Context, postID int64) (*entity.Post, error) {
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
			"Only club members can access the post", entity.ClubMemberGroup...)
		if err != nil {
			return nil, err
		}
	}

	return post, nil
}

func (d *commentDomain) getEvent(ctx context.Context, eventID int64) (*entity.Event, error) {
	event, err := d.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Wrap(err)
	}

	if event.Scope == entity.ScopeClub {
		_, err := verifyClubRole(ctx, d.clubRoleVerifier, event.ClubID.Int64,
			"Only club members can access the event", entity.ClubMemberGroup...)
		if err != nil {
			return nil, err
		}
	}

	return event, nil
}

func (d *commentDomain) getOwnComment(ctx context.Context, commentID int64, denyMsg string) (*entity.Comment, error) {
	comment, err := d.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Wrap(err)
	}

	if comment.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, denyMsg)
	}

	return comment, nil
}

func convertComments(comments []entity.Comment) []model.Comment {
	result := []model.Comment{}
	for i := range comments {
		result = append(result, model.ConvertComment(&comments[i], model.ConvertShortUser(&comments[i].Author)))
	}

	return result
}
