package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/groove-lab/backend/config"
	"github.com/groove-lab/backend/internal/entity"
	"github.com/groove-lab/backend/pkg/authenticator"
	"github.com/groove-lab/backend/pkg/logger"
	"github.com/groove-lab/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context with an empty in-memory database. The
// database has only one connection, so concurrent transactions are
// serialized.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: time.Hour,
			},
		},
		File: config.FileConfigs{
			MaxSize:          2 * 1024 * 1024,
			ProfileImageSize: 64,
		},
		Feed: config.FeedConfigs{
			HotWindow: 14 * 24 * time.Hour,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(db); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID int64) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
