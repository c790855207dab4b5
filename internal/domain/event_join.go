package domain

import (
	"context"
	"errors"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	admissionConfirmed = "confirmed"
	admissionDuplicate = "duplicate"
	admissionFull      = "full"
)

type EventJoinDomain interface {
	Apply(context.Context, *model.ApplyEventRequest) (*model.ApplyEventResponse, error)
	Cancel(context.Context, *model.CancelEventJoinRequest) (*model.CancelEventJoinResponse, error)
	GetParticipants(context.Context, *model.GetEventParticipantsRequest) (*model.GetEventParticipantsResponse, error)
	GetMyJoins(context.Context, *model.GetMyEventJoinsRequest) (*model.GetMyEventJoinsResponse, error)
}

type eventJoinDomain struct {
	eventRepo        repository.EventRepository
	eventJoinRepo    repository.EventJoinRepository
	clubRoleVerifier *common.ClubRoleVerifier
	publisher        pubsub.Publisher
}

func NewEventJoinDomain(
	eventRepo repository.EventRepository,
	eventJoinRepo repository.EventJoinRepository,
	clubJoinRepo repository.ClubJoinRepository,
	publisher pubsub.Publisher,
) EventJoinDomain {
	return &eventJoinDomain{
		eventRepo:        eventRepo,
		eventJoinRepo:    eventJoinRepo,
		clubRoleVerifier: common.NewClubRoleVerifier(clubJoinRepo),
		publisher:        publisher,
	}
}

// Apply admits the caller to the event. The event row stays locked until the
// transaction ends, so admissions to one event are serialized and the number
// of confirmed participants never exceeds the capacity.
//
// The lock must be the first statement of the transaction. Under REPEATABLE
// READ the first plain read fixes the snapshot, and a snapshot taken before
// the lock would miss joins committed by the previous lock holder.
func (d *eventJoinDomain) Apply(
	ctx context.Context, req *model.ApplyEventRequest,
) (*model.ApplyEventResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	event, err := d.eventRepo.GetByIDForUpdate(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock event: %v", err)
		return nil, errorx.Wrap(err)
	}

	if event.Scope == entity.ScopeClub {
		_, err := verifyClubRole(ctx, d.clubRoleVerifier, event.ClubID.Int64,
			"Only club members can join the event", entity.ClubMemberGroup...)
		if err != nil {
			return nil, err
		}
	}

	join, err := d.getJoinForApply(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if event.Capacity.Valid {
		count, err = d.eventJoinRepo.CountByEventID(ctx, event.ID, entity.EventJoinConfirmed)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
			return nil, errorx.Wrap(err)
		}

		if count >= event.Capacity.Int64 {
			countAdmission(admissionFull)
			return nil, errorx.New(errorx.Conflict, "Event capacity exceeded")
		}
	}

	if join == nil {
		join = &entity.EventJoin{
			Base:          entity.Base{ID: newID(ctx)},
			EventID:       event.ID,
			ParticipantID: userID,
			Status:        entity.EventJoinConfirmed,
		}

		if err := d.eventJoinRepo.Create(ctx, join); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create event join: %v", err)
			return nil, errorx.Wrap(err)
		}
	} else {
		err := d.eventJoinRepo.UpdateByID(ctx, join.ID, map[string]any{
			"status":     entity.EventJoinConfirmed,
			"is_deleted": false,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot confirm event join: %v", err)
			return nil, errorx.Wrap(err)
		}

		join.Status = entity.EventJoinConfirmed
		join.IsDeleted = false
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	countAdmission(admissionConfirmed)
	common.PublishActivity(ctx, d.publisher, entity.NotificationEventJoined, event.HostID, event.ID,
		"A new participant joined %s", event.Title)

	clientEvent := model.ConvertEvent(event, model.ConvertShortUser(&event.Host), false, count+1)
	resp := model.ApplyEventResponse(model.ConvertEventJoin(join, &clientEvent, nil))
	return &resp, nil
}

func (d *eventJoinDomain) Cancel(
	ctx context.Context, req *model.CancelEventJoinRequest,
) (*model.CancelEventJoinResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.eventRepo.GetByIDForUpdate(ctx, req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot lock event: %v", err)
		return nil, errorx.Wrap(err)
	}

	join, err := d.eventJoinRepo.Get(ctx, req.EventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event join")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event join: %v", err)
		return nil, errorx.Wrap(err)
	}

	if join.IsDeleted || join.Status != entity.EventJoinConfirmed {
		return nil, errorx.New(errorx.NotFound, "Not found event join")
	}

	err = d.eventJoinRepo.UpdateByID(ctx, join.ID, map[string]any{"status": entity.EventJoinCancelled})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel event join: %v", err)
		return nil, errorx.Wrap(err)
	}
	join.Status = entity.EventJoinCancelled

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Wrap(err)
	}

	resp := model.CancelEventJoinResponse(model.ConvertEventJoin(join, nil, nil))
	return &resp, nil
}

func (d *eventJoinDomain) GetParticipants(
	ctx context.Context, req *model.GetEventParticipantsRequest,
) (*model.GetEventParticipantsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Wrap(err)
	}

	if event.Scope == entity.ScopeClub {
		_, err := verifyClubRole(ctx, d.clubRoleVerifier, event.ClubID.Int64,
			"Only club members can see participants", entity.ClubMemberGroup...)
		if err != nil {
			return nil, err
		}
	}

	joins, err := d.eventJoinRepo.GetListByEventID(ctx, event.ID, entity.EventJoinConfirmed, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Wrap(err)
	}

	participants := []model.EventJoin{}
	for i := range joins {
		user := model.ConvertShortUser(&joins[i].Participant)
		participants = append(participants, model.ConvertEventJoin(&joins[i], nil, &user))
	}

	return &model.GetEventParticipantsResponse{Participants: participants}, nil
}

func (d *eventJoinDomain) GetMyJoins(
	ctx context.Context, req *model.GetMyEventJoinsRequest,
) (*model.GetMyEventJoinsResponse, error) {
	if err := checkPagination(ctx, req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	joins, err := d.eventJoinRepo.GetListByParticipantID(
		ctx, xcontext.RequestUserID(ctx), entity.EventJoinConfirmed, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined events: %v", err)
		return nil, errorx.Wrap(err)
	}

	eventIDs := make([]int64, 0, len(joins))
	for _, j := range joins {
		eventIDs = append(eventIDs, j.EventID)
	}

	counts, err := d.eventJoinRepo.CountByEventIDs(ctx, eventIDs, entity.EventJoinConfirmed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Wrap(err)
	}

	result := []model.EventJoin{}
	for i := range joins {
		event := &joins[i].Event
		clientEvent := model.ConvertEvent(event, model.ConvertShortUser(&event.Host), false, counts[event.ID])
		result = append(result, model.ConvertEventJoin(&joins[i], &clientEvent, nil))
	}

	return &model.GetMyEventJoinsResponse{Joins: result}, nil
}

// getJoinForApply returns the reusable join row of the user, or nil if the
// user never joined the event. A live confirmed join is a Conflict.
func (d *eventJoinDomain) getJoinForApply(ctx context.Context, eventID, userID int64) (*entity.EventJoin, error) {
	join, err := d.eventJoinRepo.Get(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get event join: %v", err)
		return nil, errorx.Wrap(err)
	}

	if !join.IsDeleted && join.Status == entity.EventJoinConfirmed {
		countAdmission(admissionDuplicate)
		return nil, errorx.New(errorx.Conflict, "Already joined the event")
	}

	return join, nil
}

func countAdmission(result string) {
	common.PromCounters[common.EventAdmissionTotal].WithLabelValues(result).Inc()
}
