package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-showcase/internal/config"
	"github.com/iliyamo/studio-showcase/internal/database"
	"github.com/iliyamo/studio-showcase/internal/handler"
	"github.com/iliyamo/studio-showcase/internal/logger"
	"github.com/iliyamo/studio-showcase/internal/middleware"
	"github.com/iliyamo/studio-showcase/internal/queue"
	"github.com/iliyamo/studio-showcase/internal/repository"
	"github.com/iliyamo/studio-showcase/internal/router"
	"github.com/iliyamo/studio-showcase/internal/service"
	"github.com/iliyamo/studio-showcase/internal/storage"
	"github.com/iliyamo/studio-showcase/internal/utils"
)

const serviceName = "studio-showcase"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.Events.Enabled {
		events = service.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue, log)
	}
	if cfg.Events.AuditConsumer {
		consumer := &queue.AuditConsumer{
			URL:   cfg.Events.URL,
			Queue: cfg.Events.Queue,
			Dir:   cfg.Events.AuditLogDir,
			Log:   log.Named("audit"),
		}
		go func() { _ = consumer.Run(ctx) }()
	}

	files, err := storage.New(ctx, cfg.Storage, cfg.Upload.Dir)
	if err != nil {
		return err
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	images := repository.NewImageRepo(db)
	categories := repository.NewCategoryRepo(db)

	issuer := utils.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.AccessTTLMin)*time.Minute, time.Now)
	authSvc := service.NewAuthService(users, tokens, utils.NewHasher(cfg.BcryptCost, log), issuer,
		service.AuthConfig{
			RefreshTTL:                     time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
			RevokeSessionsOnPasswordChange: cfg.RevokeSessionsOnPasswordChange,
		}, events, log)
	imageSvc := service.NewImageService(images, categories, files,
		service.UploadPolicy{MaxFileSize: cfg.Upload.MaxFileSize, AllowedExtensions: cfg.Upload.AllowedExtensions},
		events, log)

	if cfg.TokenReapInterval > 0 {
		go service.RunTokenReaper(ctx, tokens, cfg.TokenReapInterval, cfg.TokenRetention, log.Named("reaper"))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Validator = handler.NewValidator()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins(),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	// multipart framing on top of the largest accepted file
	e.Use(echomw.BodyLimit(bodyLimit(cfg.Upload.MaxFileSize)))

	e.Static("/static", cfg.StaticDir)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	deps := router.Deps{
		Guard:     authSvc,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb, log),
	}
	router.RegisterRoutes(e, handler.NewHealthHandler(db, serviceName))
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc), deps)
	router.RegisterContent(e, router.Content{
		Images:         handler.NewImageHandler(imageSvc),
		Categories:     handler.NewCategoryHandler(categories),
		HeroSlides:     handler.NewHeroSlideHandler(repository.NewHeroSlideRepo(db), images),
		Testimonials:   handler.NewTestimonialHandler(repository.NewTestimonialRepo(db)),
		SocialMedia:    handler.NewSocialMediaHandler(repository.NewSocialMediaRepo(db)),
		BusinessHours:  handler.NewBusinessHoursHandler(repository.NewBusinessHoursRepo(db)),
		ContactDetails: handler.NewContactDetailsHandler(repository.NewContactDetailsRepo(db)),
	}, deps)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// bodyLimit renders the echo body limit for a maximum file size in bytes.
func bodyLimit(maxFile int64) string {
	kb := maxFile/1024 + 512
	return strconv.FormatInt(kb, 10) + "K"
}
