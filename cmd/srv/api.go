package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
	"github.com/yatube-lab/backend/internal/common"
	"github.com/yatube-lab/backend/internal/middleware"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/migration"
	"github.com/yatube-lab/backend/pkg/render"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"github.com/yatube-lab/backend/web"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	s.loadStorage()
	s.loadPageCache()
	s.loadSearchIndex()
	defer s.indexer.Close()
	s.loadRepos()
	s.loadDomains()

	if xcontext.Configs(s.ctx).Search.IndexDir == "" {
		n, err := s.searchDomain.Reindex(s.ctx)
		if err != nil {
			return err
		}
		xcontext.Logger(s.ctx).Infof("Indexed %d posts in memory", n)
	}

	if err := s.loadRouter(); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowCredentials: true,
		}).Handler(s.router.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		termSignal := make(chan os.Signal, 1)
		signal.Notify(termSignal, syscall.SIGINT, syscall.SIGTERM)
		sig := <-termSignal
		xcontext.Logger(s.ctx).Infof("Got a signal of %s, shutting down", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shut down server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", s.server.Addr)
	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() error {
	renderer, err := render.New(web.Templates(), render.Year, render.RequestUser, render.RequestPath)
	if err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)

	s.router = router.New(s.ctx, renderer)
	s.router.SetLoginURL(model.LoginURL)
	s.router.SetErrorTemplate(model.ErrorTemplate)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.NewAuthVerifier(s.userRepo).WithAccessToken().Middleware())
	s.router.After(middleware.HandleSaveSession())
	s.router.After(middleware.HandleSetCookies())
	s.router.Static("/static/", web.Static())

	// The home page may be stale for up to the index TTL.
	cachedRouter := s.router.Branch()
	cachedRouter.CachePage(s.pageCache, cfg.Cache.IndexTTL, common.PageCacheKey(cfg.Cache.IndexKey))
	{
		router.GET(cachedRouter, "/{$}", s.feedDomain.Index)
	}

	// Public pages.
	router.GET(s.router, "/group/{slug}/", s.feedDomain.GetGroupPosts)
	router.GET(s.router, "/profile/{username}/", s.feedDomain.GetProfile)
	router.GET(s.router, "/posts/{post_id}/", s.postDomain.Get)
	router.GET(s.router, "/search/", s.searchDomain.SearchPosts)
	router.GET(s.router, "/about/author/", s.aboutDomain.Author)
	router.GET(s.router, "/about/tech/", s.aboutDomain.Tech)

	// These following pages need a logged in user.
	loginRouter := s.router.Branch()
	loginRouter.Before(middleware.RequireLogin())
	{
		router.GET(loginRouter, "/create/", s.postDomain.CreateForm)
		router.POST(loginRouter, "/create/", s.postDomain.Create)
		router.GET(loginRouter, "/posts/{post_id}/edit/", s.postDomain.EditForm)
		router.POST(loginRouter, "/posts/{post_id}/edit/", s.postDomain.Edit)
		router.POST(loginRouter, "/posts/{post_id}/comment/", s.commentDomain.Add)
		router.GET(loginRouter, "/follow/", s.feedDomain.GetFollowIndex)
		router.GET(loginRouter, "/profile/{username}/follow/", s.followDomain.Follow)
		router.POST(loginRouter, "/profile/{username}/follow/", s.followDomain.Follow)
		router.GET(loginRouter, "/profile/{username}/unfollow/", s.followDomain.Unfollow)
		router.POST(loginRouter, "/profile/{username}/unfollow/", s.followDomain.Unfollow)
	}

	// Auth pages.
	router.GET(s.router, "/auth/signup/", s.authDomain.SignupForm)
	router.POST(s.router, "/auth/signup/", s.authDomain.Signup)
	router.GET(s.router, "/auth/login/", s.authDomain.LoginForm)
	router.POST(s.router, "/auth/login/", s.authDomain.Login)
	router.GET(s.router, "/auth/logout/", s.authDomain.Logout)

	return nil
}
