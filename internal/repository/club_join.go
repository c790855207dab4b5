package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type GetListClubJoinFilter struct {
	ClubID int64
	Status entity.ClubJoinStatus
	Offset int
	Limit  int
}

type ClubJoinRepository interface {
	Create(ctx context.Context, data *entity.ClubJoin) error
	Get(ctx context.Context, userID, clubID int64) (*entity.ClubJoin, error)
	GetActive(ctx context.Context, userID, clubID int64) (*entity.ClubJoin, error)
	GetListByClubID(ctx context.Context, filter GetListClubJoinFilter) ([]entity.ClubJoin, error)
	GetListByUserID(ctx context.Context, userID int64, statuses []entity.ClubJoinStatus, offset, limit int) ([]entity.ClubJoin, error)
	GetActiveClubIDs(ctx context.Context, userID int64) ([]int64, error)
	CountLeadingClubs(ctx context.Context, userID int64) (int64, error)
	UpdateByID(ctx context.Context, id int64, data map[string]any) error
	DeleteByID(ctx context.Context, id int64) error
	SoftDeleteByClubID(ctx context.Context, clubID int64) error
	SoftDeleteByUserID(ctx context.Context, userID int64) error
}

type clubJoinRepository struct{}

func NewClubJoinRepository() *clubJoinRepository {
	return &clubJoinRepository{}
}

func (r *clubJoinRepository) Create(ctx context.Context, data *entity.ClubJoin) error {
	return xcontext.DB(ctx).Create(data).Error
}

// Get returns the join row of user in club regardless of its status and
// deletion flag.
func (r *clubJoinRepository) Get(ctx context.Context, userID, clubID int64) (*entity.ClubJoin, error) {
	var result entity.ClubJoin
	err := xcontext.DB(ctx).Where("user_id=? AND club_id=?", userID, clubID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *clubJoinRepository) GetActive(ctx context.Context, userID, clubID int64) (*entity.ClubJoin, error) {
	var result entity.ClubJoin
	err := xcontext.DB(ctx).
		Where("user_id=? AND club_id=? AND status=? AND is_deleted=?",
			userID, clubID, entity.ClubJoinActive, false).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *clubJoinRepository) GetListByClubID(
	ctx context.Context, filter GetListClubJoinFilter,
) ([]entity.ClubJoin, error) {
	var result []entity.ClubJoin
	err := xcontext.DB(ctx).
		Preload("User").
		Where("club_id=? AND status=? AND is_deleted=?", filter.ClubID, filter.Status, false).
		Order("role ASC").
		Order("created_at ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clubJoinRepository) GetListByUserID(
	ctx context.Context, userID int64, statuses []entity.ClubJoinStatus, offset, limit int,
) ([]entity.ClubJoin, error) {
	var result []entity.ClubJoin
	err := xcontext.DB(ctx).
		Preload("Club").
		Joins("join clubs on clubs.id=club_joins.club_id").
		Where("club_joins.user_id=? AND club_joins.status IN ? AND club_joins.is_deleted=?",
			userID, statuses, false).
		Where("clubs.is_deleted=?", false).
		Order("club_joins.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clubJoinRepository) GetActiveClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	var result []int64
	err := xcontext.DB(ctx).
		Model(&entity.ClubJoin{}).
		Where("user_id=? AND status=? AND is_deleted=?", userID, entity.ClubJoinActive, false).
		Pluck("club_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *clubJoinRepository) CountLeadingClubs(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ClubJoin{}).
		Joins("join clubs on clubs.id=club_joins.club_id").
		Where("club_joins.user_id=? AND club_joins.role=? AND club_joins.status=? AND club_joins.is_deleted=?",
			userID, entity.ClubRoleLeader, entity.ClubJoinActive, false).
		Where("clubs.is_deleted=?", false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *clubJoinRepository) UpdateByID(ctx context.Context, id int64, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.ClubJoin{}).
		Where("id=?", id).
		Updates(data)

	return checkOne(tx)
}

func (r *clubJoinRepository) DeleteByID(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.ClubJoin{}, "id=?", id)
	return checkOne(tx)
}

func (r *clubJoinRepository) SoftDeleteByClubID(ctx context.Context, clubID int64) error {
	return xcontext.DB(ctx).
		Model(&entity.ClubJoin{}).
		Where("club_id=? AND is_deleted=?", clubID, false).
		Update("is_deleted", true).Error
}

func (r *clubJoinRepository) SoftDeleteByUserID(ctx context.Context, userID int64) error {
	return xcontext.DB(ctx).
		Model(&entity.ClubJoin{}).
		Where("user_id=? AND is_deleted=?", userID, false).
		Update("is_deleted", true).Error
}
