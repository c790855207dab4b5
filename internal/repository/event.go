package repository

import (
	"context"
	"time"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpcomingEventFilter struct {
	After   time.Time
	ClubIDs []int64
	Offset  int
	Limit   int
}

type EventRepository interface {
	Create(ctx context.Context, data *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Event, error)
	GetUpcomingList(ctx context.Context, filter UpcomingEventFilter) ([]entity.Event, error)
	GetListByMemberClubs(ctx context.Context, userID int64, offset, limit int) ([]entity.Event, error)
	GetListByClubID(ctx context.Context, clubID int64, offset, limit int) ([]entity.Event, error)
	UpdateByID(ctx context.Context, id int64, data map[string]any) error
	IncreaseViewCount(ctx context.Context, id int64) error
	IncreaseLikeCount(ctx context.Context, id int64) error
	DecreaseLikeCount(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
	SoftDeleteByClubID(ctx context.Context, clubID int64) error
	SoftDeleteByHostID(ctx context.Context, hostID int64) error
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, data *entity.Event) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	var result entity.Event
	err := xcontext.DB(ctx).
		Preload("Host").
		Where("id=? AND is_deleted=?", id, false).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByIDForUpdate reads the event with SELECT ... FOR UPDATE. The lock is
// held until the surrounding transaction ends, so it must be called inside a
// transaction. The host is preloaded after the lock is taken.
func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Event, error) {
	var result entity.Event
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Host").
		Where("id=? AND is_deleted=?", id, false).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetUpcomingList(
	ctx context.Context, filter UpcomingEventFilter,
) ([]entity.Event, error) {
	var result []entity.Event
	tx := xcontext.DB(ctx).
		Preload("Host").
		Where("is_deleted=? AND starts_at>?", false, filter.After)

	if len(filter.ClubIDs) == 0 {
		tx = tx.Where("scope=?", entity.ScopeGlobal)
	} else {
		tx = tx.Where("(scope=? OR (scope=? AND club_id IN ?))",
			entity.ScopeGlobal, entity.ScopeClub, filter.ClubIDs)
	}

	err := tx.Order("starts_at ASC").
		Order("id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) GetListByMemberClubs(
	ctx context.Context, userID int64, offset, limit int,
) ([]entity.Event, error) {
	var result []entity.Event
	err := xcontext.DB(ctx).
		Preload("Host").
		Joins("join club_joins on club_joins.club_id=events.club_id").
		Where("club_joins.user_id=? AND club_joins.status=? AND club_joins.is_deleted=?",
			userID, entity.ClubJoinActive, false).
		Where("events.is_deleted=?", false).
		Order("events.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) GetListByClubID(
	ctx context.Context, clubID int64, offset, limit int,
) ([]entity.Event, error) {
	var result []entity.Event
	err := xcontext.DB(ctx).
		Preload("Host").
		Where("club_id=? AND is_deleted=?", clubID, false).
		Order("starts_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) UpdateByID(ctx context.Context, id int64, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=? AND is_deleted=?", id, false).
		Updates(data)

	return checkOne(tx)
}

func (r *eventRepository) IncreaseViewCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=?", id).
		UpdateColumn("view_count", gorm.Expr("view_count+1"))

	return checkOne(tx)
}

func (r *eventRepository) IncreaseLikeCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=?", id).
		UpdateColumn("like_count", gorm.Expr("like_count+1"))

	return checkOne(tx)
}

func (r *eventRepository) DecreaseLikeCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=? AND like_count>0", id).
		UpdateColumn("like_count", gorm.Expr("like_count-1"))

	return checkOne(tx)
}

func (r *eventRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id=? AND is_deleted=?", id, false).
		Update("is_deleted", true)

	return checkOne(tx)
}

func (r *eventRepository) SoftDeleteByClubID(ctx context.Context, clubID int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("club_id=? AND is_deleted=?", clubID, false).
		Update("is_deleted", true).Error
}

func (r *eventRepository) SoftDeleteByHostID(ctx context.Context, hostID int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("host_id=? AND is_deleted=?", hostID, false).
		Update("is_deleted", true).Error
}
