package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type PostLikeRepository interface {
	Exists(ctx context.Context, postID, userID int64) (bool, error)
	Create(ctx context.Context, data *entity.PostLike) error
	Delete(ctx context.Context, postID, userID int64) error
	GetLikedPostIDs(ctx context.Context, userID int64, postIDs []int64) ([]int64, error)
}

type postLikeRepository struct{}

func NewPostLikeRepository() *postLikeRepository {
	return &postLikeRepository{}
}

func (r *postLikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.PostLike{}).
		Where("post_id=? AND user_id=?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *postLikeRepository) Create(ctx context.Context, data *entity.PostLike) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postLikeRepository) Delete(ctx context.Context, postID, userID int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.PostLike{}, "post_id=? AND user_id=?", postID, userID)
	return checkOne(tx)
}

// GetLikedPostIDs returns the subset of postIDs which the user liked.
func (r *postLikeRepository) GetLikedPostIDs(
	ctx context.Context, userID int64, postIDs []int64,
) ([]int64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var result []int64
	err := xcontext.DB(ctx).
		Model(&entity.PostLike{}).
		Where("user_id=? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
