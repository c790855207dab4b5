package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/enum"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EventDomain interface {
	Create(context.Context, *model.CreateEventRequest) (*model.CreateEventResponse, error)
	Get(context.Context, *model.GetEventRequest) (*model.GetEventResponse, error)
	Update(context.Context, *model.UpdateEventRequest) (*model.UpdateEventResponse, error)
	Delete(context.Context, *model.DeleteEventRequest) (*model.DeleteEventResponse, error)
	GetUpcoming(context.Context, *model.GetUpcomingEventsRequest) (*model.GetUpcomingEventsResponse, error)
	GetMyClub(context.Context, *model.GetMyClubEventsRequest) (*model.GetMyClubEventsResponse, error)
	GetClub(context.Context, *model.GetClubEventsRequest) (*model.GetClubEventsResponse, error)
	Like(context.Context, *model.LikeEventRequest) (*model.LikeEventResponse, error)
}

type eventDomain struct {
	eventRepo        repository.EventRepository
	eventLikeRepo    repository.EventLikeRepository
	eventJoinRepo    repository.EventJoinRepository
	clubJoinRepo     repository.ClubJoinRepository
	clubRoleVerifier *common.ClubRoleVerifier
	storage          storage.Storage
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	eventLikeRepo repository.EventLikeRepository,
	eventJoinRepo repository.EventJoinRepository,
	clubJoinRepo repository.ClubJoinRepository,
	storage storage.Storage,
) EventDomain {
	return &eventDomain{
		eventRepo:        eventRepo,
		eventLikeRepo:    eventLikeRepo,
		eventJoinRepo:    eventJoinRepo,
		clubJoinRepo:     clubJoinRepo,
		clubRoleVerifier: common.NewClubRoleVerifier(clubJoinRepo),
		storage:          storage,
	}
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	scope, err := parseScope(req.Scope, req.ClubID)
	if err != nil {
		return nil, err
	}

	eventType, err := enum.ToEnum[entity.EventType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid event type %s, expected one of %s",
			req.Type, enum.Names[entity.EventType]())
	}

	if err := checkEventTime(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	if err := common.VerifyOwnImages(ctx, common.ImageEvent, "images", req.Images...); err != nil {
		return nil, err
	}

	event := &entity.Event{
		Base:            entity.Base{ID: newID(ctx)},
		HostID:          xcontext.RequestUserID(ctx),
		Scope:           scope,
		Type:            eventType,
		Title:           req.Title,
		Content:         req.Content,
		Tags:            req.Tags,
		Images:          req.Images,
		LocationName:    req.LocationName,
		LocationAddress: req.LocationAddress,
		LocationLink:    req.LocationLink,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	}

	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, errorx.NewInvalidField("capacity", "Capacity must be positive")
		}

		event.Capacity = sql.NullInt64{Int64: *req.Capacity, Valid: true}
	}

	if scope == entity.ScopeClub {
		_, err := verifyClubRole(ctx, d.clubRoleVerifier, req.ClubID,
			"Only leader or managers can create club events", entity.ClubAdminGroup...)
		if err != nil {
			return nil, err
		}

		event.ClubID = sql.NullInt64{Int64: req.ClubID, Valid: true}
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Wrap(err)
	}

	event, err = d.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created event: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.CreateEventResponse(model.ConvertEvent(event, model.ConvertShortUser(&event.Host), false, 0))
	return &resp, nil
}

func (d *eventDomain) Get(ctx context.Context, req *model.GetEventRequest) (*model.GetEventResponse, error) {
	event, err := d.getVisibleEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if err := d.eventRepo.IncreaseViewCount(ctx, event.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase view count: %v", err)
		return nil, errorx.Wrap(err)
	}
	event.ViewCount++

	isLiked, err := d.eventLikeRepo.Exists(ctx, event.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked state: %v", err)
		return nil, errorx.Wrap(err)
	}

	count, err := d.eventJoinRepo.CountByEventID(ctx, event.ID, entity.EventJoinConfirmed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.GetEventResponse(model.ConvertEvent(event, model.ConvertShortUser(&event.Host), isLiked, count))
	return &resp, nil
}

func (d *eventDomain) Update(
	ctx context.Context, req *model.UpdateEventRequest,
) (*model.UpdateEventResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The lock keeps admissions out while capacity changes.
	event, err := d.lockOwnEvent(ctx, req.EventID, "Only host can update the event")
	if err != nil {
		return nil, err
	}

	update := map[string]any{}
	if req.Type != "" {
		eventType, err := enum.ToEnum[entity.EventType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid event type %s, expected one of %s",
				req.Type, enum.Names[entity.EventType]())
		}

		update["type"] = eventType
		event.Type = eventType
	}

	if req.Title != "" {
		update["title"] = req.Title
		event.Title = req.Title
	}

	if req.Content != nil {
		update["content"] = *req.Content
		event.Content = *req.Content
	}

	if req.Tags != nil {
		update["tags"] = entity.Array[string](req.Tags)
		event.Tags = req.Tags
	}

	if req.LocationName != nil {
		update["location_name"] = *req.LocationName
		event.LocationName = *req.LocationName
	}

	if req.LocationAddress != nil {
		update["location_address"] = *req.LocationAddress
		event.LocationAddress = *req.LocationAddress
	}

	if req.LocationLink != nil {
		update["location_link"] = *req.LocationLink
		event.LocationLink = *req.LocationLink
	}

	if req.StartsAt != nil {
		update["starts_at"] = *req.StartsAt
		event.StartsAt = *req.StartsAt
	}

	if req.EndsAt != nil {
		update["ends_at"] = *req.EndsAt
		event.EndsAt = *req.EndsAt
	}

	if err := checkEventTime(event.StartsAt, event.EndsAt); err != nil {
		return nil, err
	}

	count, err := d.eventJoinRepo.CountByEventID(ctx, event.ID, entity.EventJoinConfirmed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Wrap(err)
	}

	if req.Unlimited {
		update["capacity"] = sql.NullInt64{}
		event.Capacity = sql.NullInt64{}
	} else if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, errorx.NewInvalidField("capacity", "Capacity must be positive")
		}

		if *req.Capacity < count {
			return nil, errorx.New(errorx.Conflict,
				"Capacity cannot be less than the current participants (%d)", count)
		}

		event.Capacity = sql.NullInt64{Int64: *req.Capacity, Valid: true}
		update["capacity"] = event.Capacity
	}

	if req.NewImages != nil || req.KeepImages != nil {
		images, err := common.ProcessImageUpdate(ctx, d.storage, common.ImageEvent,
			event.Images, req.NewImages, req.KeepImages)
		if err != nil {
			return nil, err
		}

		event.Images = images
		update["images"] = event.Images
	}

	if len(update) > 0 {
		if err := d.eventRepo.UpdateByID(ctx, event.ID, update); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update event: %v", err)
			return nil, errorx.Wrap(err)
		}
	}

	isLiked, err := d.eventLikeRepo.Exists(ctx, event.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked state: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.UpdateEventResponse(model.ConvertEvent(event, model.ConvertShortUser(&event.Host), isLiked, count))
	return &resp, nil
}

func (d *eventDomain) Delete(
	ctx context.Context, req *model.DeleteEventRequest,
) (*model.DeleteEventResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	event, err := d.lockOwnEvent(ctx, req.EventID, "Only host can delete the event")
	if err != nil {
		return nil, err
	}

	if err := d.eventRepo.SoftDelete(ctx, event.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := d.eventJoinRepo.SoftDeleteByEventID(ctx, event.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event joins: %v", err)
		return nil, errorx.Wrap(err)
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.DeleteEventResponse{}, nil
}

func (d *eventDomain) GetUpcoming(
	ctx context.Context, req *model.GetUpcomingEventsRequest,
) (*model.GetUpcomingEventsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	clubIDs, err := d.clubJoinRepo.GetActiveClubIDs(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get clubs of user: %v", err)
		return nil, errorx.Wrap(err)
	}

	result, err := d.eventRepo.GetUpcomingList(ctx, repository.UpcomingEventFilter{
		After:   time.Now(),
		ClubIDs: clubIDs,
		Offset:  req.Offset,
		Limit:   req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get upcoming events: %v", err)
		return nil, errorx.Wrap(err)
	}

	events, err := d.convertEvents(ctx, result)
	if err != nil {
		return nil, err
	}

	return &model.GetUpcomingEventsResponse{Events: events}, nil
}

func (d *eventDomain) GetMyClub(
	ctx context.Context, req *model.GetMyClubEventsRequest,
) (*model.GetMyClubEventsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	result, err := d.eventRepo.GetListByMemberClubs(ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get events of my clubs: %v", err)
		return nil, errorx.Wrap(err)
	}

	events, err := d.convertEvents(ctx, result)
	if err != nil {
		return nil, err
	}

	return &model.GetMyClubEventsResponse{Events: events}, nil
}

func (d *eventDomain) GetClub(
	ctx context.Context, req *model.GetClubEventsRequest,
) (*model.GetClubEventsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	_, err := verifyClubRole(ctx, d.clubRoleVerifier, req.ClubID,
		"Only club members can see events of the club", entity.ClubMemberGroup...)
	if err != nil {
		return nil, err
	}

	result, err := d.eventRepo.GetListByClubID(ctx, req.ClubID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get events of club: %v", err)
		return nil, errorx.Wrap(err)
	}

	events, err := d.convertEvents(ctx, result)
	if err != nil {
		return nil, err
	}

	return &model.GetClubEventsResponse{Events: events}, nil
}

// Like toggles the like of user on the event.
func (d *eventDomain) Like(ctx context.Context, req *model.LikeEventRequest) (*model.LikeEventResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	event, err := d.getVisibleEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	isLiked, err := d.eventLikeRepo.Exists(ctx, event.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked state: %v", err)
		return nil, errorx.Wrap(err)
	}

	if isLiked {
		if err := d.eventLikeRepo.Delete(ctx, event.ID, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unlike event: %v", err)
			return nil, errorx.Wrap(err)
		}

		if err := d.eventRepo.DecreaseLikeCount(ctx, event.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease like count: %v", err)
			return nil, errorx.Wrap(err)
		}
		event.LikeCount--
	} else {
		if err := d.eventLikeRepo.Create(ctx, &entity.EventLike{EventID: event.ID, UserID: userID}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot like event: %v", err)
			return nil, errorx.Wrap(err)
		}

		if err := d.eventRepo.IncreaseLikeCount(ctx, event.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase like count: %v", err)
			return nil, errorx.Wrap(err)
		}
		event.LikeCount++
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	return &model.LikeEventResponse{IsLiked: !isLiked, LikeCount: event.LikeCount}, nil
}

func (d *eventDomain) getVisibleEvent(ctx context.Context, eventID int64) (*entity.Event, error) {
	event, err := d.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Wrap(err)
	}

	if event.Scope == entity.ScopeClub {
		_, err := verifyClubRole(ctx, d.clubRoleVerifier, event.ClubID.Int64,
			"Only club members can see the event", entity.ClubMemberGroup...)
		if err != nil {
			return nil, err
		}
	}

	return event, nil
}

// lockOwnEvent locks the event row of the caller. It must run inside a
// transaction and before any other read of it.
func (d *eventDomain) lockOwnEvent(ctx context.Context, eventID int64, denyMsg string) (*entity.Event, error) {
	event, err := d.eventRepo.GetByIDForUpdate(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock event: %v", err)
		return nil, errorx.Wrap(err)
	}

	if event.HostID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, denyMsg)
	}

	return event, nil
}

// convertEvents merges liked state and participant counts into the page of
// events, each with one lookup.
func (d *eventDomain) convertEvents(ctx context.Context, events []entity.Event) ([]model.Event, error) {
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	likedIDs, err := d.eventLikeRepo.GetLikedEventIDs(ctx, xcontext.RequestUserID(ctx), ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked events: %v", err)
		return nil, errorx.Wrap(err)
	}

	counts, err := d.eventJoinRepo.CountByEventIDs(ctx, ids, entity.EventJoinConfirmed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Wrap(err)
	}

	liked := toSet(likedIDs)
	result := []model.Event{}
	for i := range events {
		result = append(result, model.ConvertEvent(
			&events[i], model.ConvertShortUser(&events[i].Host), liked[events[i].ID], counts[events[i].ID]))
	}

	return result, nil
}

func checkEventTime(startsAt, endsAt time.Time) error {
	if endsAt.Before(startsAt) {
		return errorx.NewInvalidField("ends_at", "End time must not be before start time")
	}

	return nil
}
