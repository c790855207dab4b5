package repository_test

import (
	"context"
	"testing"

	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ctxDB(ctx context.Context) *gorm.DB {
	return xcontext.DB(ctx)
}

func TestEventJoinRepository_Count(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	eventJoinRepo := repository.NewEventJoinRepository()
	require.NoError(t, eventJoinRepo.Create(ctx, &entity.EventJoin{
		Base:          entity.Base{ID: 1000},
		EventID:       testutil.Event1.ID,
		ParticipantID: testutil.User3.ID,
		Status:        entity.EventJoinCancelled,
	}))

	count, err := eventJoinRepo.CountByEventID(ctx, testutil.Event1.ID, entity.EventJoinConfirmed)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	counts, err := eventJoinRepo.CountByEventIDs(ctx,
		[]int64{testutil.Event1.ID, testutil.Event2.ID}, entity.EventJoinConfirmed)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{testutil.Event1.ID: 1}, counts)
}

func TestEventJoinRepository_GetListByParticipantID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	joins, err := repository.NewEventJoinRepository().GetListByParticipantID(
		ctx, testutil.User2.ID, entity.EventJoinConfirmed, 0, 10)
	require.NoError(t, err)
	require.Len(t, joins, 1)
	require.Equal(t, testutil.EventJoin1.ID, joins[0].ID)
	require.Equal(t, testutil.Event1.Title, joins[0].Event.Title)
	require.Equal(t, testutil.User1.Nickname, joins[0].Event.Host.Nickname)
}

func TestEventJoinRepository_SoftDeleteByUserID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	// User1 hosts Event1, so the join of User2 is removed too.
	eventJoinRepo := repository.NewEventJoinRepository()
	require.NoError(t, eventJoinRepo.SoftDeleteByUserID(ctx, testutil.User1.ID))

	join, err := eventJoinRepo.Get(ctx, testutil.Event1.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.True(t, join.IsDeleted)
}

func TestEventRepository_GetByIDForUpdate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	eventRepo := repository.NewEventRepository()
	event, err := eventRepo.GetByIDForUpdate(ctx, testutil.Event1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), event.Capacity.Int64)

	require.NoError(t, eventRepo.SoftDelete(ctx, testutil.Event1.ID))
	_, err = eventRepo.GetByIDForUpdate(ctx, testutil.Event1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
