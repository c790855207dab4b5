package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	UpdateByID(ctx context.Context, id int64, data map[string]any) error
	SoftDelete(ctx context.Context, id int64) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var result entity.User
	err := xcontext.DB(ctx).Where("id=? AND is_deleted=?", id, false).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Where("id IN ?", ids).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	err := xcontext.DB(ctx).Where("email=? AND is_deleted=?", email, false).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ExistsByEmail also counts deleted users, their emails stay reserved.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).Where("email=?", email).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).Where("nickname=?", nickname).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id int64, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND is_deleted=?", id, false).
		Updates(data)

	return checkOne(tx)
}

func (r *userRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND is_deleted=?", id, false).
		Update("is_deleted", true)

	return checkOne(tx)
}
