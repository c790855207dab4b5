package domain

import (
	"context"
	"sync"
	"testing"

	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// queryLog records every SELECT issued through the DB of a context, tagging
// the ones which carry a row lock.
type queryLog struct {
	mu      sync.Mutex
	queries []string
}

func recordQueries(t *testing.T, ctx context.Context) *queryLog {
	t.Helper()

	log := &queryLog{}
	err := xcontext.DB(ctx).Callback().Query().Before("gorm:query").Register("test:record_query",
		func(tx *gorm.DB) {
			q := tx.Statement.Table
			if _, locked := tx.Statement.Clauses["FOR"]; locked {
				q += " FOR UPDATE"
			}

			log.mu.Lock()
			defer log.mu.Unlock()
			log.queries = append(log.queries, q)
		})
	require.NoError(t, err)

	return log
}

func (l *queryLog) first(t *testing.T) string {
	t.Helper()

	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.queries)
	return l.queries[0]
}

func Test_eventJoinDomain_LocksEventFirst(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		eventID int64
		run     func(context.Context, EventJoinDomain, int64) error
	}{
		{
			name:    "apply to global event",
			userID:  testutil.User3.ID,
			eventID: testutil.Event1.ID,
			run: func(ctx context.Context, d EventJoinDomain, eventID int64) error {
				_, err := d.Apply(ctx, &model.ApplyEventRequest{EventID: eventID})
				return err
			},
		},
		{
			name:    "apply twice",
			userID:  testutil.User2.ID,
			eventID: testutil.Event1.ID,
			run: func(ctx context.Context, d EventJoinDomain, eventID int64) error {
				_, err := d.Apply(ctx, &model.ApplyEventRequest{EventID: eventID})
				return err
			},
		},
		{
			name:    "apply to club event",
			userID:  testutil.User2.ID,
			eventID: testutil.Event2.ID,
			run: func(ctx context.Context, d EventJoinDomain, eventID int64) error {
				_, err := d.Apply(ctx, &model.ApplyEventRequest{EventID: eventID})
				return err
			},
		},
		{
			name:    "cancel",
			userID:  testutil.User2.ID,
			eventID: testutil.Event1.ID,
			run: func(ctx context.Context, d EventJoinDomain, eventID int64) error {
				_, err := d.Cancel(ctx, &model.CancelEventJoinRequest{EventID: eventID})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tt.userID)
			testutil.CreateFixtureDb(ctx)
			log := recordQueries(t, ctx)

			_ = tt.run(ctx, newTestEventJoinDomain(nil), tt.eventID)
			require.Equal(t, "events FOR UPDATE", log.first(t))
		})
	}
}

func Test_eventDomain_LocksEventFirst(t *testing.T) {
	tests := []struct {
		name string
		run  func(context.Context, EventDomain) error
	}{
		{
			name: "update capacity",
			run: func(ctx context.Context, d EventDomain) error {
				_, err := d.Update(ctx, &model.UpdateEventRequest{
					EventID:  testutil.Event1.ID,
					Capacity: ptr[int64](1),
				})
				return err
			},
		},
		{
			name: "delete",
			run: func(ctx context.Context, d EventDomain) error {
				_, err := d.Delete(ctx, &model.DeleteEventRequest{EventID: testutil.Event1.ID})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(testutil.User1.ID)
			testutil.CreateFixtureDb(ctx)
			log := recordQueries(t, ctx)

			_ = tt.run(ctx, newTestEventDomain())
			require.Equal(t, "events FOR UPDATE", log.first(t))
		})
	}
}
