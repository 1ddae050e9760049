package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gorilla/sessions"
	"github.com/urfave/cli/v2"
	"github.com/yatube-lab/backend/config"
	"github.com/yatube-lab/backend/internal/domain"
	"github.com/yatube-lab/backend/internal/domain/search"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/authenticator"
	"github.com/yatube-lab/backend/pkg/crypto"
	"github.com/yatube-lab/backend/pkg/logger"
	"github.com/yatube-lab/backend/pkg/pagecache"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/storage"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"github.com/yatube-lab/backend/pkg/xredis"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx    context.Context
	app    *cli.App
	router *router.Router
	server *http.Server

	storage   storage.Storage
	pageCache pagecache.Cache
	indexer   search.Indexer

	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository

	feedDomain    domain.FeedDomain
	followDomain  domain.FollowDomain
	postDomain    domain.PostDomain
	commentDomain domain.CommentDomain
	authDomain    domain.AuthDomain
	groupDomain   domain.GroupDomain
	searchDomain  domain.SearchDomain
	aboutDomain   domain.AboutDomain
}

// loadConfig reads the config file, then the environment. It also builds the
// base context of every command.
func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg := config.Default()
	if path := cctx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return fmt.Errorf("cannot read config %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg)

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.NewLogger(level)

	if cfg.Env == "local" {
		if cfg.Session.Secret == "" {
			cfg.Session.Secret, err = crypto.NewSecret(crypto.SecretSize)
			if err != nil {
				return err
			}
			log.Warnf("Session secret is not set, sessions will not survive a restart")
		}

		if cfg.Auth.TokenSecret == "" {
			cfg.Auth.TokenSecret, err = crypto.NewSecret(crypto.SecretSize)
			if err != nil {
				return err
			}
			log.Warnf("Token secret is not set, logins will not survive a restart")
		}
	}

	if cfg.Session.Secret == "" || cfg.Auth.TokenSecret == "" {
		return errors.New("session secret and token secret are required")
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, log)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx, sessionStore)
	return nil
}

// overrideFromEnv replaces secrets and addresses with the environment
// variables which are set.
func overrideFromEnv(cfg *config.Configs) {
	vars := map[string]*string{
		"ENV":                &cfg.Env,
		"LOG_LEVEL":          &cfg.LogLevel,
		"DB_DRIVER":          &cfg.Database.Driver,
		"DB_SQLITE_FILE":     &cfg.Database.SqliteFile,
		"MYSQL_HOST":         &cfg.Database.Host,
		"MYSQL_PORT":         &cfg.Database.Port,
		"MYSQL_DATABASE":     &cfg.Database.Database,
		"MYSQL_USER":         &cfg.Database.User,
		"MYSQL_PASSWORD":     &cfg.Database.Password,
		"API_HOST":           &cfg.ApiServer.Host,
		"API_PORT":           &cfg.ApiServer.Port,
		"TOKEN_SECRET":       &cfg.Auth.TokenSecret,
		"SESSION_SECRET":     &cfg.Session.Secret,
		"S3_REGION":          &cfg.Storage.Region,
		"S3_ENDPOINT":        &cfg.Storage.Endpoint,
		"S3_PUBLIC_ENDPOINT": &cfg.Storage.PublicEndpoint,
		"S3_ACCESS_KEY":      &cfg.Storage.AccessKey,
		"S3_SECRET_KEY":      &cfg.Storage.SecretKey,
		"REDIS_ADDR":         &cfg.Redis.Addr,
		"REDIS_PASSWORD":     &cfg.Redis.Password,
		"SEARCH_INDEX_DIR":   &cfg.Search.IndexDir,
	}

	for name, value := range vars {
		if v, ok := os.LookupEnv(name); ok {
			*value = v
		}
	}

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.ApiServer.AllowedOrigins = splitList(v)
	}
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.SqliteFile + "?_foreign_keys=on")
	default:
		panic(fmt.Sprintf("unsupported database driver %q", cfg.Driver))
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		panic(err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) loadStorage() {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPageCache() {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		s.pageCache = pagecache.NewMemoryCache()
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.pageCache = pagecache.NewRedisCache(client)
}

func (s *srv) loadSearchIndex() {
	var err error
	s.indexer, err = search.NewBleveIndex(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.groupRepo = repository.NewGroupRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.followRepo = repository.NewFollowRepository()
}

func (s *srv) loadDomains() {
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.userRepo)
	s.feedDomain = domain.NewFeedDomain(s.postRepo, s.groupRepo, s.userRepo, s.followRepo, s.followDomain)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.groupRepo, s.commentRepo, s.storage, s.indexer)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postDomain)
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.groupDomain = domain.NewGroupDomain(s.groupRepo)
	s.searchDomain = domain.NewSearchDomain(s.postRepo, s.indexer)
	s.aboutDomain = domain.NewAboutDomain()
}
