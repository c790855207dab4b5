package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/groove-lab/backend/config"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/pkg/authenticator"
	"github.com/groove-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	tokenEngineKey struct{}
	snowflakeKey   struct{}
	accessTokenKey struct{}
	httpRequestKey struct{}
	startTimeKey   struct{}
	responseKey    struct{}
	errorKey       struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg := ctx.Value(configsKey{})
	if cfg == nil {
		return config.Configs{}
	}

	return cfg.(config.Configs)
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l := ctx.Value(loggerKey{})
	if l == nil {
		return logger.NewLogger(logger.SILENCE)
	}

	return l.(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

func DB(ctx context.Context) *gorm.DB {
	db := ctx.Value(dbKey{})
	if db == nil {
		return nil
	}

	return db.(*gorm.DB)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine := ctx.Value(tokenEngineKey{})
	if engine == nil {
		return nil
	}

	return engine.(authenticator.TokenEngine)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node := ctx.Value(snowflakeKey{})
	if node == nil {
		return nil
	}

	return node.(*snowflake.Node)
}

// WithAccessToken stores the principal of the authenticated request.
func WithAccessToken(ctx context.Context, token model.AccessToken) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessToken(ctx context.Context) (model.AccessToken, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(model.AccessToken)
	return token, ok
}

func WithRequestUserID(ctx context.Context, userID int64) context.Context {
	token, _ := AccessToken(ctx)
	token.ID = userID
	return WithAccessToken(ctx, token)
}

// RequestUserID returns the id of authenticated user, zero if the request is
// anonymous.
func RequestUserID(ctx context.Context) int64 {
	token, _ := AccessToken(ctx)
	return token.ID
}

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	req := ctx.Value(httpRequestKey{})
	if req == nil {
		return nil
	}

	return req.(*http.Request)
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err := ctx.Value(errorKey{})
	if err == nil {
		return nil
	}

	return err.(error)
}

// Inherit copies the dependencies carried by src into dst. It is used to
// attach the service dependencies to a per-request context.
func Inherit(dst, src context.Context) context.Context {
	for _, key := range []any{configsKey{}, loggerKey{}, dbKey{}, tokenEngineKey{}, snowflakeKey{}} {
		if v := src.Value(key); v != nil {
			dst = context.WithValue(dst, key, v)
		}
	}

	return dst
}
