package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SearchClubFilter struct {
	Q      string
	Offset int
	Limit  int
}

type ClubRepository interface {
	Create(ctx context.Context, data *entity.Club) error
	GetByID(ctx context.Context, id int64) (*entity.Club, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Club, error)
	GetList(ctx context.Context, filter SearchClubFilter) ([]entity.Club, error)
	UpdateByID(ctx context.Context, id int64, data map[string]any) error
	IncreaseMemberCount(ctx context.Context, id int64) error
	DecreaseMemberCount(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
}

type clubRepository struct{}

func NewClubRepository() *clubRepository {
	return &clubRepository{}
}

func (r *clubRepository) Create(ctx context.Context, data *entity.Club) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *clubRepository) GetByID(ctx context.Context, id int64) (*entity.Club, error) {
	var result entity.Club
	err := xcontext.DB(ctx).Where("id=? AND is_deleted=?", id, false).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *clubRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Club, error) {
	var result []entity.Club
	err := xcontext.DB(ctx).Where("id IN ? AND is_deleted=?", ids, false).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clubRepository) GetList(ctx context.Context, filter SearchClubFilter) ([]entity.Club, error) {
	var result []entity.Club
	tx := xcontext.DB(ctx).
		Where("is_deleted=?", false).
		Order("member_count DESC").
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.Q != "" {
		tx = tx.Where("name LIKE ?", "%"+filter.Q+"%")
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clubRepository) UpdateByID(ctx context.Context, id int64, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Club{}).
		Where("id=? AND is_deleted=?", id, false).
		Updates(data)

	return checkOne(tx)
}

func (r *clubRepository) IncreaseMemberCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Club{}).
		Where("id=?", id).
		Update("member_count", gorm.Expr("member_count+1"))

	return checkOne(tx)
}

func (r *clubRepository) DecreaseMemberCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Club{}).
		Where("id=? AND member_count>0", id).
		Update("member_count", gorm.Expr("member_count-1"))

	return checkOne(tx)
}

func (r *clubRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Club{}).
		Where("id=? AND is_deleted=?", id, false).
		Update("is_deleted", true)

	return checkOne(tx)
}
