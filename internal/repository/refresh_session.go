package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/groove-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

// RefreshSession is the server side state of a refresh token family. Only the
// hashed family is stored.
type RefreshSession struct {
	Family     string    `json:"family"`
	Counter    uint64    `json:"counter"`
	Expiration time.Time `json:"expiration"`
}

type RefreshSessionRepository interface {
	Create(ctx context.Context, userID int64, session *RefreshSession) error
	Get(ctx context.Context, userID int64) (*RefreshSession, error)
	Rotate(ctx context.Context, userID int64) error
	Delete(ctx context.Context, userID int64) error
}

type refreshSessionRepository struct {
	redisClient xredis.Client
}

func NewRefreshSessionRepository(redisClient xredis.Client) *refreshSessionRepository {
	return &refreshSessionRepository{redisClient: redisClient}
}

// Create replaces any existing session of the user, a user has one refresh
// token family at a time.
func (r *refreshSessionRepository) Create(ctx context.Context, userID int64, session *RefreshSession) error {
	return r.redisClient.SetObj(ctx, redisKeyRefreshSession(userID),
		session, time.Until(session.Expiration))
}

// Get returns gorm.ErrRecordNotFound if the user has no session.
func (r *refreshSessionRepository) Get(ctx context.Context, userID int64) (*RefreshSession, error) {
	var session RefreshSession
	err := r.redisClient.GetObj(ctx, redisKeyRefreshSession(userID), &session)
	if err != nil {
		if errors.Is(err, xredis.ErrNotFound) {
			return nil, gorm.ErrRecordNotFound
		}

		return nil, err
	}

	return &session, nil
}

// Rotate advances the counter of the session, the expiration is unchanged.
func (r *refreshSessionRepository) Rotate(ctx context.Context, userID int64) error {
	session, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}

	session.Counter++
	err = r.redisClient.ReplaceObj(ctx, redisKeyRefreshSession(userID), session)
	if errors.Is(err, xredis.ErrNotFound) {
		return gorm.ErrRecordNotFound
	}

	return err
}

func (r *refreshSessionRepository) Delete(ctx context.Context, userID int64) error {
	return r.redisClient.Del(ctx, redisKeyRefreshSession(userID))
}

func redisKeyRefreshSession(userID int64) string {
	return fmt.Sprintf("refreshsession:%d", userID)
}
