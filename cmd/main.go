package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	httpctx "github.com/dtroode/contacts-server/internal/api/http/context"
	"github.com/dtroode/contacts-server/internal/api/http/middleware"
	"github.com/dtroode/contacts-server/internal/api/http/router"
	httpServer "github.com/dtroode/contacts-server/internal/api/http/server"
	"github.com/dtroode/contacts-server/internal/config"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/mailer"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/password"
	"github.com/dtroode/contacts-server/internal/repository/postgres"
	"github.com/dtroode/contacts-server/internal/service"
	storage "github.com/dtroode/contacts-server/internal/storage/minio"
	"github.com/dtroode/contacts-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, cfg.JWT.VerificationTokenTTL)
	hasher := password.NewHasher(cfg.Bcrypt.Cost)
	ctxMgr := httpctx.NewManager()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.SMTP.FromName,
		cfg.HTTP.BaseURL,
	)

	authService := service.NewAuth(userRepo, tokenManager, hasher, smtpMailer, logger)
	userService := service.NewUser(userRepo, storageClient, logger)
	contactService := service.NewContact(contactRepo, logger)

	var rateLimit *middleware.RateLimit
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		rateLimit = middleware.NewRateLimit(rdb, ctxMgr)
	}

	r := router.New(authService, userService, contactService, userRepo, tokenManager, ctxMgr, rateLimit, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = httpServer.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = httpServer.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
