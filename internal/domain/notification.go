package domain

import (
	"context"
	"errors"
	"time"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/enum"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	// Handle stores the activity in pack as a notification of its recipient.
	// It is the handler of the activity topic subscriber.
	Handle(ctx context.Context, pack *pubsub.Pack, t time.Time)
	GetMy(context.Context, *model.GetMyNotificationsRequest) (*model.GetMyNotificationsResponse, error)
	Read(context.Context, *model.ReadNotificationRequest) (*model.ReadNotificationResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) NotificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) Handle(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var activity model.ActivityEvent
	if err := pack.Decode(&activity); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode activity: %v", err)
		return
	}

	activityType, err := enum.ToEnum[entity.NotificationType](activity.Type)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Unknown activity type %s", activity.Type)
		return
	}

	notification := &entity.Notification{
		Base:        entity.Base{ID: newID(ctx), CreatedAt: t},
		RecipientID: activity.RecipientID,
		ActorID:     activity.ActorID,
		Type:        activityType,
		ReferenceID: activity.ReferenceID,
		Message:     activity.Message,
	}

	if err := d.notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
		return
	}

	xcontext.Logger(ctx).Debugf("Stored %s notification for user %d", activityType, activity.RecipientID)
}

func (d *notificationDomain) GetMy(
	ctx context.Context, req *model.GetMyNotificationsRequest,
) (*model.GetMyNotificationsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	notifications, err := d.notificationRepo.GetListByRecipientID(
		ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Wrap(err)
	}

	result := []model.Notification{}
	for i := range notifications {
		result = append(result, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetMyNotificationsResponse{Notifications: result}, nil
}

func (d *notificationDomain) Read(
	ctx context.Context, req *model.ReadNotificationRequest,
) (*model.ReadNotificationResponse, error) {
	err := d.notificationRepo.MarkRead(ctx, req.NotificationID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.ReadNotificationResponse{}, nil
}
