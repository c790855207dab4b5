package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID int64, offset, limit int) ([]entity.Comment, error)
	GetListByEventID(ctx context.Context, eventID int64, offset, limit int) ([]entity.Comment, error)
	UpdateByID(ctx context.Context, id int64, data map[string]any) error
	SoftDelete(ctx context.Context, id int64) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	var result entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("id=? AND is_deleted=?", id, false).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetListByPostID(
	ctx context.Context, postID int64, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("post_id=? AND is_deleted=?", postID, false).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) GetListByEventID(
	ctx context.Context, eventID int64, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("event_id=? AND is_deleted=?", eventID, false).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) UpdateByID(ctx context.Context, id int64, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=? AND is_deleted=?", id, false).
		Updates(data)

	return checkOne(tx)
}

func (r *commentRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=? AND is_deleted=?", id, false).
		Update("is_deleted", true)

	return checkOne(tx)
}
