// @title Moderation Platform API
// @version 1.0
// @description Submission review workflow.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/api/handlers"
	"github.com/linskybing/moderation-platform/internal/api/middleware"
	"github.com/linskybing/moderation-platform/internal/api/routes"
	"github.com/linskybing/moderation-platform/internal/application"
	"github.com/linskybing/moderation-platform/internal/config"
	"github.com/linskybing/moderation-platform/internal/config/db"
	"github.com/linskybing/moderation-platform/internal/cron"
	"github.com/linskybing/moderation-platform/internal/notify"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/storage"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, logOut := config.InitLogging(cfg.LogDir)
	if logFile != nil {
		defer logFile.Close()
	}

	middleware.Init(cfg.JWTSecret, cfg.Issuer)

	pipeline, err := workflow.Load(cfg.Workflow.PipelineFile)
	if err != nil {
		log.Fatalf("Failed to load review pipeline: %v", err)
	}

	gdb, err := db.Init(cfg, logOut)
	if err != nil {
		log.Fatalf("Failed to initialise database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, err := storage.NewMinioStore(storage.Config{
		Endpoint:      cfg.Minio.Endpoint,
		AccessKey:     cfg.Minio.AccessKey,
		SecretKey:     cfg.Minio.SecretKey,
		Bucket:        cfg.Minio.Bucket,
		UseSSL:        cfg.Minio.UseSSL,
		SkipTLSVerify: cfg.Minio.SkipTLSVerify,
	})
	if err != nil {
		log.Fatalf("Failed to create file store: %v", err)
	}
	bucketCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := files.EnsureBucket(bucketCtx); err != nil {
		log.Printf("Warning: file store bucket check failed: %v", err)
	}
	cancel()

	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.SMTP.Configured() {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:          cfg.SMTP.Host,
			Port:          cfg.SMTP.Port,
			User:          cfg.SMTP.User,
			Pass:          cfg.SMTP.Pass,
			From:          cfg.SMTP.From,
			SkipTLSVerify: cfg.SMTP.SkipTLSVerify,
		})
	}

	repos := repository.NewRepositories(gdb)
	services := application.New(repos, application.Options{
		Pipeline:       pipeline,
		Events:         application.NewEventHub(0),
		Files:          files,
		StorageTimeout: cfg.StorageTimeout,
		RetentionYears: cfg.Workflow.FileRetentionYears,
	})

	cron.StartEscalationTask(ctx, services.Workflow, mailer, cron.EscalationConfig{
		Recipient:     cfg.Workflow.EscalationEmail,
		ReviewTimeout: cfg.Workflow.ReviewTimeout(),
		Interval:      cfg.Workflow.EscalationInterval,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins, !cfg.IsProduction()))
	router.Use(middleware.LoggingMiddleware(logOut))
	router.MaxMultipartMemory = application.MaxDocumentSize + 1<<20

	routes.RegisterRoutes(router, handlers.New(services, pipeline, cfg))

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down API server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
