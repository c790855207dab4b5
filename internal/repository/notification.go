package repository

import (
	"context"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type NotificationRepository interface {
	Create(ctx context.Context, data *entity.Notification) error
	GetListByRecipientID(ctx context.Context, recipientID int64, offset, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, data *entity.Notification) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *notificationRepository) GetListByRecipientID(
	ctx context.Context, recipientID int64, offset, limit int,
) ([]entity.Notification, error) {
	var result []entity.Notification
	err := xcontext.DB(ctx).
		Where("recipient_id=?", recipientID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("id=? AND recipient_id=?", id, recipientID).
		Update("is_read", true)

	return checkOne(tx)
}
