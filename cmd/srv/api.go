package main

import (
	"fmt"
	"net/http"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/internal/middleware"
	"github.com/groove-lab/backend/pkg/prometheus"
	"github.com/groove-lab/backend/pkg/router"
	"github.com/groove-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadIdentity()
	s.loadRedisClient()
	s.loadStorage()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: middleware.AllowCors(cfg.AllowOrigins, s.router.Handler()),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)
	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	created := router.WithStatus(http.StatusCreated)

	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	s.router.Raw(http.MethodGet, "/metrics", prometheus.NewHandler(common.PromCollectors()...))

	cfg := xcontext.Configs(s.ctx).Storage
	if cfg.Type != "s3" {
		s.router.Static(cfg.Local.URLPrefix, cfg.Local.RootDir)
	}

	// These APIs don't need any token.
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/auth/signup", s.authDomain.SignUp, created)
		router.POST(publicRouter, "/auth/login", s.authDomain.Login)
		router.POST(publicRouter, "/auth/refresh", s.authDomain.Refresh)
	}

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.POST(authRouter, "/auth/logout", s.authDomain.Logout)

		// User API
		router.GET(authRouter, "/users/me", s.userDomain.GetMe)
		router.PATCH(authRouter, "/users/me", s.userDomain.UpdateMe)
		router.PATCH(authRouter, "/users/me/password", s.userDomain.UpdatePassword)
		router.DELETE(authRouter, "/users/me", s.userDomain.DeleteMe)
		router.GET(authRouter, "/users/me/clubs", s.clubDomain.GetMyClubs)
		router.GET(authRouter, "/users/me/events", s.eventJoinDomain.GetMyJoins)
		router.GET(authRouter, "/users/me/notifications", s.notificationDomain.GetMy)
		router.POST(authRouter, "/users/me/notifications/:notification_id/read", s.notificationDomain.Read)

		// Club API
		router.POST(authRouter, "/clubs", s.clubDomain.Create, created)
		router.GET(authRouter, "/clubs", s.clubDomain.GetList)
		router.GET(authRouter, "/clubs/:club_id", s.clubDomain.Get)
		router.PATCH(authRouter, "/clubs/:club_id", s.clubDomain.Update)
		router.DELETE(authRouter, "/clubs/:club_id/image", s.clubDomain.DeleteImage)
		router.DELETE(authRouter, "/clubs/:club_id", s.clubDomain.Delete)
		router.GET(authRouter, "/clubs/:club_id/posts", s.postDomain.GetClub)
		router.GET(authRouter, "/clubs/:club_id/events", s.eventDomain.GetClub)

		// Club membership API
		router.POST(authRouter, "/clubs/:club_id/apply", s.clubJoinDomain.Apply, created)
		router.DELETE(authRouter, "/clubs/:club_id/apply", s.clubJoinDomain.CancelApplication)
		router.GET(authRouter, "/clubs/:club_id/my-status", s.clubJoinDomain.GetMyStatus)
		router.GET(authRouter, "/clubs/:club_id/applications", s.clubJoinDomain.GetApplications)
		router.POST(authRouter, "/clubs/:club_id/applications/:applicant_id/approve", s.clubJoinDomain.Approve)
		router.POST(authRouter, "/clubs/:club_id/applications/:applicant_id/reject", s.clubJoinDomain.Reject)
		router.GET(authRouter, "/clubs/:club_id/members", s.clubJoinDomain.GetMembers)
		router.PATCH(authRouter, "/clubs/:club_id/members/:member_id/role", s.clubJoinDomain.ChangeRole)
		router.DELETE(authRouter, "/clubs/:club_id/members/:member_id", s.clubJoinDomain.Kick)
		router.DELETE(authRouter, "/clubs/:club_id/membership", s.clubJoinDomain.Leave)

		// Post API
		router.POST(authRouter, "/posts", s.postDomain.Create, created)
		router.GET(authRouter, "/posts/hot", s.postDomain.GetHot)
		router.GET(authRouter, "/posts/my-clubs", s.postDomain.GetMyClub)
		router.GET(authRouter, "/posts/:post_id", s.postDomain.Get)
		router.PATCH(authRouter, "/posts/:post_id", s.postDomain.Update)
		router.DELETE(authRouter, "/posts/:post_id", s.postDomain.Delete)
		router.POST(authRouter, "/posts/:post_id/like", s.postDomain.Like)
		router.POST(authRouter, "/posts/:post_id/comments", s.commentDomain.CreateOnPost, created)
		router.GET(authRouter, "/posts/:post_id/comments", s.commentDomain.GetListOfPost)

		// Event API
		router.POST(authRouter, "/events", s.eventDomain.Create, created)
		router.GET(authRouter, "/events/upcoming", s.eventDomain.GetUpcoming)
		router.GET(authRouter, "/events/my-clubs", s.eventDomain.GetMyClub)
		router.GET(authRouter, "/events/:event_id", s.eventDomain.Get)
		router.PATCH(authRouter, "/events/:event_id", s.eventDomain.Update)
		router.DELETE(authRouter, "/events/:event_id", s.eventDomain.Delete)
		router.POST(authRouter, "/events/:event_id/like", s.eventDomain.Like)
		router.POST(authRouter, "/events/:event_id/join", s.eventJoinDomain.Apply, created)
		router.DELETE(authRouter, "/events/:event_id/join", s.eventJoinDomain.Cancel)
		router.GET(authRouter, "/events/:event_id/participants", s.eventJoinDomain.GetParticipants)
		router.POST(authRouter, "/events/:event_id/comments", s.commentDomain.CreateOnEvent, created)
		router.GET(authRouter, "/events/:event_id/comments", s.commentDomain.GetListOfEvent)

		// Comment API
		router.PATCH(authRouter, "/comments/:comment_id", s.commentDomain.Update)
		router.DELETE(authRouter, "/comments/:comment_id", s.commentDomain.Delete)

		// File API
		router.POST(authRouter, "/images", s.fileDomain.UploadImage, created)
	}
}
