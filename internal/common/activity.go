package common

import (
	"context"
	"fmt"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/xcontext"
)

const ActivityTopic = "activity"

// PublishActivity sends the activity to the broker. It never fails the
// caller, errors are logged.
func PublishActivity(
	ctx context.Context,
	publisher pubsub.Publisher,
	activityType entity.NotificationType,
	recipientID, referenceID int64,
	format string, args ...any,
) {
	actorID := xcontext.RequestUserID(ctx)
	if recipientID == 0 || recipientID == actorID {
		return
	}

	pack, err := pubsub.NewJSONPack(fmt.Sprint(recipientID), model.ActivityEvent{
		Type:        string(activityType),
		ActorID:     actorID,
		RecipientID: recipientID,
		ReferenceID: referenceID,
		Message:     fmt.Sprintf(format, args...),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode activity: %v", err)
		return
	}

	if err := publisher.Publish(ctx, ActivityTopic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish activity %s: %v", activityType, err)
	}
}
