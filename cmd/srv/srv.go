package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/groove-lab/backend/config"
	"github.com/groove-lab/backend/internal/domain"
	"github.com/groove-lab/backend/internal/repository"
	"github.com/groove-lab/backend/pkg/authenticator"
	"github.com/groove-lab/backend/pkg/kafka"
	"github.com/groove-lab/backend/pkg/logger"
	"github.com/groove-lab/backend/pkg/pubsub"
	"github.com/groove-lab/backend/pkg/router"
	"github.com/groove-lab/backend/pkg/storage"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/groove-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client
	storage     storage.Storage
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber

	userRepo           repository.UserRepository
	refreshSessionRepo repository.RefreshSessionRepository
	clubRepo           repository.ClubRepository
	clubJoinRepo       repository.ClubJoinRepository
	postRepo           repository.PostRepository
	postLikeRepo       repository.PostLikeRepository
	eventRepo          repository.EventRepository
	eventLikeRepo      repository.EventLikeRepository
	eventJoinRepo      repository.EventJoinRepository
	commentRepo        repository.CommentRepository
	notificationRepo   repository.NotificationRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	clubDomain         domain.ClubDomain
	clubJoinDomain     domain.ClubJoinDomain
	postDomain         domain.PostDomain
	eventDomain        domain.EventDomain
	eventJoinDomain    domain.EventJoinDomain
	commentDomain      domain.CommentDomain
	fileDomain         domain.FileDomain
	notificationDomain domain.NotificationDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.ctx = xcontext.WithConfigs(context.Background(), config.Load())
}

func (s *srv) loadLogger() {
	level := logger.ParseLevel(xcontext.Configs(s.ctx).LogLevel)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.Database.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadIdentity() {
	cfg := xcontext.Configs(s.ctx)
	node, err := snowflake.NewNode(cfg.SnowFlake.NodeID)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis.Addr)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	cfg := xcontext.Configs(s.ctx).Storage
	switch cfg.Type {
	case "s3":
		s3Storage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			panic(err)
		}
		s.storage = s3Storage
	default:
		s.storage = storage.NewLocalStorage(cfg.Local)
	}
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx).Kafka
	if !cfg.Enabled {
		xcontext.Logger(s.ctx).Warnf("Kafka is disabled, activities will not be published")
		s.publisher = pubsub.NewNopPublisher(xcontext.Logger(s.ctx))
		return
	}

	publisher, err := kafka.NewPublisher("api", []string{cfg.Addr})
	if err != nil {
		panic(err)
	}
	s.publisher = publisher
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshSessionRepo = repository.NewRefreshSessionRepository(s.redisClient)
	s.clubRepo = repository.NewClubRepository()
	s.clubJoinRepo = repository.NewClubJoinRepository()
	s.postRepo = repository.NewPostRepository()
	s.postLikeRepo = repository.NewPostLikeRepository()
	s.eventRepo = repository.NewEventRepository()
	s.eventLikeRepo = repository.NewEventLikeRepository()
	s.eventJoinRepo = repository.NewEventJoinRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.notificationRepo = repository.NewNotificationRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshSessionRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.clubRepo, s.clubJoinRepo, s.postRepo,
		s.eventRepo, s.eventJoinRepo, s.refreshSessionRepo, s.storage)
	s.clubDomain = domain.NewClubDomain(s.clubRepo, s.clubJoinRepo, s.postRepo, s.eventRepo,
		s.eventJoinRepo, s.storage)
	s.clubJoinDomain = domain.NewClubJoinDomain(s.clubRepo, s.clubJoinRepo, s.publisher)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.postLikeRepo, s.clubJoinRepo, s.storage)
	s.eventDomain = domain.NewEventDomain(s.eventRepo, s.eventLikeRepo, s.eventJoinRepo,
		s.clubJoinRepo, s.storage)
	s.eventJoinDomain = domain.NewEventJoinDomain(s.eventRepo, s.eventJoinRepo, s.clubJoinRepo,
		s.publisher)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postRepo, s.eventRepo,
		s.clubJoinRepo, s.publisher)
	s.fileDomain = domain.NewFileDomain(s.storage)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}
