package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type EventLikeRepository interface {
	Exists(ctx context.Context, eventID, userID int64) (bool, error)
	Create(ctx context.Context, data *entity.EventLike) error
	Delete(ctx context.Context, eventID, userID int64) error
	GetLikedEventIDs(ctx context.Context, userID int64, eventIDs []int64) ([]int64, error)
}

type eventLikeRepository struct{}

func NewEventLikeRepository() *eventLikeRepository {
	return &eventLikeRepository{}
}

func (r *eventLikeRepository) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.EventLike{}).
		Where("event_id=? AND user_id=?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *eventLikeRepository) Create(ctx context.Context, data *entity.EventLike) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventLikeRepository) Delete(ctx context.Context, eventID, userID int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.EventLike{}, "event_id=? AND user_id=?", eventID, userID)
	return checkOne(tx)
}

// GetLikedEventIDs returns the subset of eventIDs which the user liked.
func (r *eventLikeRepository) GetLikedEventIDs(
	ctx context.Context, userID int64, eventIDs []int64,
) ([]int64, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	var result []int64
	err := xcontext.DB(ctx).
		Model(&entity.EventLike{}).
		Where("user_id=? AND event_id IN ?", userID, eventIDs).
		Pluck("event_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
