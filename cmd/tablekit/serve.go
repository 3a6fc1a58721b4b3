package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablekit/tablekit/cache"
	"github.com/tablekit/tablekit/config"
	"github.com/tablekit/tablekit/debounce"
	"github.com/tablekit/tablekit/ecode"
	"github.com/tablekit/tablekit/handler"
	"github.com/tablekit/tablekit/logger"
	"github.com/tablekit/tablekit/query/mongodb"
	"github.com/tablekit/tablekit/resp"
	"github.com/tablekit/tablekit/version"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo users table over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logger.StandardLogger()
	if err := log.Init(cfg.Logger); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}

	def, err := usersDefinition()
	if err != nil {
		return err
	}
	src := mongodb.NewSource[User](client.Database(cfg.Mongo.Database).Collection(usersCollection), def)

	var pageCache *cache.Cache[handler.Payload[User]]
	if cfg.Redis.Addr != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pageCache = cache.New[handler.Payload[User]](rc, cfg.AppName, cfg.Redis.TTL)
		log.Info("page cache enabled")
	}

	watchConfig(cfg, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/tables/users", handler.New(handler.Options[User]{
		Definition:  def,
		Cursor:      src.CursorFunc,
		MaxPageSize: cfg.MaxPageSize,
		Cache:       pageCache,
	}))
	r.GET("/tables/users/offset", handler.New(handler.Options[User]{
		Definition:  def,
		Offset:      src.OffsetFunc,
		MaxPageSize: cfg.MaxPageSize,
	}))
	r.GET("/version", func(c *gin.Context) {
		resp.Success(c.Writer, &resp.Exception{Data: version.GetVersionInfo()})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound(ecode.NotExist(c.Request.URL.Path)))
	})

	log.WithField("addr", cfg.Address()).Info("tablekit demo listening")
	return r.Run(cfg.Address())
}

// watchConfig reloads the logger settings when the config file changes.
// File watchers fire in bursts on most editors, so reloads are debounced.
func watchConfig(cfg *config.Config, log *logger.Logger) {
	if configFile == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return
	}

	d := debounce.New(time.Second)
	v.OnConfigChange(func(fsnotify.Event) {
		d.Trigger(func() {
			next, err := config.Load(configFile)
			if err != nil {
				log.WithError(err).Warn("config reload failed")
				return
			}
			if err := log.Init(next.Logger); err != nil {
				log.WithError(err).Warn("logger reload failed")
				return
			}
			log.Info("config reloaded")
		})
	})
	v.WatchConfig()
}
