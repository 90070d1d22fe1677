package main

import (
	"fmt"
	"log"

	"leadgate/internal/catalog"
	"leadgate/internal/config"
	"leadgate/internal/crm"
	"leadgate/internal/email/noop"
	"leadgate/internal/email/ses"
	"leadgate/internal/forms"
	"leadgate/internal/handler"
	"leadgate/internal/port"
	"leadgate/internal/repository/postgres"
	"leadgate/internal/router"
	"leadgate/internal/service"
	s3storage "leadgate/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	partnerRepo := postgres.NewPartnerRepo(db)
	subRepo := postgres.NewSubmissionRepo(db)
	attRepo := postgres.NewAttachmentRepo(db)

	// Initialize storage and upstream clients
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	leadAPI := crm.NewClient(&cfg.CRM)

	emailSender, err := buildEmailSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Form catalog and resolver
	cat := catalog.Default
	registry := forms.DefaultRegistry()
	resolver := forms.NewResolver(cat)

	// Initialize services
	authSvc := service.NewAuthService(partnerRepo, cfg.JWT)
	subSvc := service.NewSubmissionService(
		subRepo, attRepo, partnerRepo,
		s3Client, leadAPI, emailSender,
		registry, resolver, cfg.CRM,
	)
	attSvc := service.NewAttachmentService(
		subRepo, attRepo, s3Client, registry, cat, cfg.S3.Bucket,
	)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	formH := handler.NewFormHandler(registry)
	subH := handler.NewSubmissionHandler(subSvc)
	attH := handler.NewAttachmentHandler(attSvc)
	reportH := handler.NewReportHandler(subRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, formH, subH, attH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func buildEmailSender(cfg *config.Config) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
	default:
		return noop.NewNoopSender(), nil
	}
}
