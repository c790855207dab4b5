package repository

import (
	"context"
	"time"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HotPostFilter struct {
	Since   time.Time
	ClubIDs []int64
	Offset  int
	Limit   int
}

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	GetHotList(ctx context.Context, filter HotPostFilter) ([]entity.Post, error)
	GetListByMemberClubs(ctx context.Context, userID int64, offset, limit int) ([]entity.Post, error)
	GetListByClubID(ctx context.Context, clubID int64, offset, limit int) ([]entity.Post, error)
	UpdateByID(ctx context.Context, id int64, data map[string]any) error
	IncreaseViewCount(ctx context.Context, id int64) error
	IncreaseLikeCount(ctx context.Context, id int64) error
	DecreaseLikeCount(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
	SoftDeleteByClubID(ctx context.Context, clubID int64) error
	SoftDeleteByAuthorID(ctx context.Context, authorID int64) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var result entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("id=? AND is_deleted=?", id, false).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetHotList returns posts created since filter.Since ordered by like count.
// Club posts are only included for clubs in filter.ClubIDs.
func (r *postRepository) GetHotList(ctx context.Context, filter HotPostFilter) ([]entity.Post, error) {
	var result []entity.Post
	tx := xcontext.DB(ctx).
		Preload("Author").
		Where("is_deleted=? AND created_at>=?", false, filter.Since)

	if len(filter.ClubIDs) == 0 {
		tx = tx.Where("scope=?", entity.ScopeGlobal)
	} else {
		tx = tx.Where("(scope=? OR (scope=? AND club_id IN ?))",
			entity.ScopeGlobal, entity.ScopeClub, filter.ClubIDs)
	}

	err := tx.Order("like_count DESC").
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetListByMemberClubs(
	ctx context.Context, userID int64, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Joins("join club_joins on club_joins.club_id=posts.club_id").
		Where("club_joins.user_id=? AND club_joins.status=? AND club_joins.is_deleted=?",
			userID, entity.ClubJoinActive, false).
		Where("posts.is_deleted=?", false).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetListByClubID(
	ctx context.Context, clubID int64, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("club_id=? AND is_deleted=?", clubID, false).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) UpdateByID(ctx context.Context, id int64, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=? AND is_deleted=?", id, false).
		Updates(data)

	return checkOne(tx)
}

func (r *postRepository) IncreaseViewCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		UpdateColumn("view_count", gorm.Expr("view_count+1"))

	return checkOne(tx)
}

func (r *postRepository) IncreaseLikeCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		UpdateColumn("like_count", gorm.Expr("like_count+1"))

	return checkOne(tx)
}

func (r *postRepository) DecreaseLikeCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=? AND like_count>0", id).
		UpdateColumn("like_count", gorm.Expr("like_count-1"))

	return checkOne(tx)
}

func (r *postRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=? AND is_deleted=?", id, false).
		Update("is_deleted", true)

	return checkOne(tx)
}

func (r *postRepository) SoftDeleteByClubID(ctx context.Context, clubID int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("club_id=? AND is_deleted=?", clubID, false).
		Update("is_deleted", true).Error
}

func (r *postRepository) SoftDeleteByAuthorID(ctx context.Context, authorID int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("author_id=? AND is_deleted=?", authorID, false).
		Update("is_deleted", true).Error
}
