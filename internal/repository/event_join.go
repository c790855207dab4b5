package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type EventJoinRepository interface {
	Create(ctx context.Context, data *entity.EventJoin) error
	Get(ctx context.Context, eventID, participantID int64) (*entity.EventJoin, error)
	CountByEventID(ctx context.Context, eventID int64, status entity.EventJoinStatus) (int64, error)
	CountByEventIDs(ctx context.Context, eventIDs []int64, status entity.EventJoinStatus) (map[int64]int64, error)
	GetListByEventID(ctx context.Context, eventID int64, status entity.EventJoinStatus, offset, limit int) ([]entity.EventJoin, error)
	GetListByParticipantID(ctx context.Context, participantID int64, status entity.EventJoinStatus, offset, limit int) ([]entity.EventJoin, error)
	UpdateByID(ctx context.Context, id int64, data map[string]any) error
	SoftDeleteByEventID(ctx context.Context, eventID int64) error
	SoftDeleteByClubID(ctx context.Context, clubID int64) error
	SoftDeleteByUserID(ctx context.Context, userID int64) error
}

type eventJoinRepository struct{}

func NewEventJoinRepository() *eventJoinRepository {
	return &eventJoinRepository{}
}

func (r *eventJoinRepository) Create(ctx context.Context, data *entity.EventJoin) error {
	return xcontext.DB(ctx).Create(data).Error
}

// Get returns the join row of participant in event regardless of its status
// and deletion flag.
func (r *eventJoinRepository) Get(ctx context.Context, eventID, participantID int64) (*entity.EventJoin, error) {
	var result entity.EventJoin
	err := xcontext.DB(ctx).
		Where("event_id=? AND participant_id=?", eventID, participantID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventJoinRepository) CountByEventID(
	ctx context.Context, eventID int64, status entity.EventJoinStatus,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.EventJoin{}).
		Where("event_id=? AND status=? AND is_deleted=?", eventID, status, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *eventJoinRepository) CountByEventIDs(
	ctx context.Context, eventIDs []int64, status entity.EventJoinStatus,
) (map[int64]int64, error) {
	result := map[int64]int64{}
	if len(eventIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		EventID int64
		Total   int64
	}

	err := xcontext.DB(ctx).
		Model(&entity.EventJoin{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ? AND status=? AND is_deleted=?", eventIDs, status, false).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.EventID] = row.Total
	}

	return result, nil
}

func (r *eventJoinRepository) GetListByEventID(
	ctx context.Context, eventID int64, status entity.EventJoinStatus, offset, limit int,
) ([]entity.EventJoin, error) {
	var result []entity.EventJoin
	err := xcontext.DB(ctx).
		Preload("Participant").
		Where("event_id=? AND status=? AND is_deleted=?", eventID, status, false).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventJoinRepository) GetListByParticipantID(
	ctx context.Context, participantID int64, status entity.EventJoinStatus, offset, limit int,
) ([]entity.EventJoin, error) {
	var result []entity.EventJoin
	err := xcontext.DB(ctx).
		Preload("Event").
		Preload("Event.Host").
		Joins("join events on events.id=event_joins.event_id").
		Where("event_joins.participant_id=? AND event_joins.status=? AND event_joins.is_deleted=?",
			participantID, status, false).
		Where("events.is_deleted=?", false).
		Order("event_joins.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventJoinRepository) UpdateByID(ctx context.Context, id int64, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.EventJoin{}).
		Where("id=?", id).
		Updates(data)

	return checkOne(tx)
}

func (r *eventJoinRepository) SoftDeleteByEventID(ctx context.Context, eventID int64) error {
	return xcontext.DB(ctx).
		Model(&entity.EventJoin{}).
		Where("event_id=? AND is_deleted=?", eventID, false).
		Update("is_deleted", true).Error
}

// SoftDeleteByClubID marks joins of every event belonging to the club.
func (r *eventJoinRepository) SoftDeleteByClubID(ctx context.Context, clubID int64) error {
	db := xcontext.DB(ctx)
	clubEvents := db.Model(&entity.Event{}).Select("id").Where("club_id=?", clubID)

	return db.Model(&entity.EventJoin{}).
		Where("event_id IN (?) AND is_deleted=?", clubEvents, false).
		Update("is_deleted", true).Error
}

// SoftDeleteByUserID marks joins of the user and joins of events hosted by
// the user.
func (r *eventJoinRepository) SoftDeleteByUserID(ctx context.Context, userID int64) error {
	db := xcontext.DB(ctx)
	hostedEvents := db.Model(&entity.Event{}).Select("id").Where("host_id=?", userID)

	return db.Model(&entity.EventJoin{}).
		Where("(participant_id=? OR event_id IN (?)) AND is_deleted=?", userID, hostedEvents, false).
		Update("is_deleted", true).Error
}
