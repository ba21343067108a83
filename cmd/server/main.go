package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"firmdesk/internal/classify"
	"firmdesk/internal/config"
	"firmdesk/internal/email/noop"
	"firmdesk/internal/email/ses"
	"firmdesk/internal/extract"
	"firmdesk/internal/handler"
	"firmdesk/internal/parse"
	"firmdesk/internal/port"
	"firmdesk/internal/processor"
	"firmdesk/internal/repository/postgres"
	"firmdesk/internal/router"
	"firmdesk/internal/service"
	s3storage "firmdesk/internal/storage/s3"
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
	userRepo := postgres.NewUserRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	noticeRepo := postgres.NewNoticeRepo(db)
	txnRepo := postgres.NewTransactionRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize AI providers
	extractor := extract.NewExtractor(&cfg.AI.Extractor)
	classifier := classify.NewResilientClassifier(classify.NewClassifier(&cfg.AI.Classifier))
	financialParser := parse.NewFinancialParser(&cfg.AI.Financial)
	identityParser := parse.NewIdentityParser(&cfg.AI.Identity)
	summarizer := parse.NewSummarizer(&cfg.AI.Summarizer)

	// Initialize branch processors
	financialProc := processor.NewFinancialProcessor(financialParser, s3Client, docRepo, txnRepo)
	identityProc := processor.NewIdentityProcessor(identityParser, docRepo)
	taxProc := processor.NewTaxProcessor(summarizer, docRepo)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	pipelineSvc := service.NewPipelineService(docRepo, noticeRepo, s3Client, extractor, classifier, financialProc, identityProc, taxProc)
	uploadSvc := service.NewUploadService(s3Client, docRepo, pipelineSvc, cfg.S3)
	documentSvc := service.NewDocumentService(docRepo, s3Client)
	clientSvc := service.NewClientService(clientRepo)
	noticeSvc := service.NewNoticeService(noticeRepo)
	vendorSvc := service.NewVendorService(vendorRepo)
	transactionSvc := service.NewTransactionService(txnRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	documentH := handler.NewDocumentHandler(uploadSvc, documentSvc)
	pipelineH := handler.NewPipelineHandler(pipelineSvc)
	clientH := handler.NewClientHandler(clientSvc)
	noticeH := handler.NewNoticeHandler(noticeSvc)
	vendorH := handler.NewVendorHandler(vendorSvc)
	transactionH := handler.NewTransactionHandler(transactionSvc)
	healthH := handler.NewHealthHandler(db)

	// Start the deadline reminder worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reminderWorker := service.NewReminderWorker(noticeRepo, userRepo, newEmailSender(cfg), service.ReminderConfig{
		PollInterval: time.Duration(cfg.Reminder.PollIntervalSecs) * time.Second,
		Lookahead:    time.Duration(cfg.Reminder.LookaheadDays) * 24 * time.Hour,
	})
	go reminderWorker.Start(ctx)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, documentH, pipelineH, clientH, noticeH, vendorH, transactionH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newEmailSender(cfg *config.Config) port.EmailSender {
	if cfg.Email.Provider == "ses" {
		sender, err := ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			log.Printf("SES sender unavailable, falling back to noop: %v", err)
			return noop.NewNoopSender()
		}
		return sender
	}
	return noop.NewNoopSender()
}
