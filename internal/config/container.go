package config

import (
	"pdf-fusion/internal/domain"
	"pdf-fusion/internal/repository"
	"pdf-fusion/internal/service"
	"pdf-fusion/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient *repository.SupabaseClient
	MergeLog       *repository.MergeLogRepository
	PDFProcessor   *service.PDFProcessor
	MergeService   *service.MergeService
	SplitService   *service.SplitService
	SessionService *service.SessionService
	PreviewService *service.PreviewService
	StorageService *service.StorageService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return NewContainerWithConfig(NewConfig(), nil)
}

// NewContainerWithConfig wires the application around config. A nil
// appLogger builds one from the configured level.
func NewContainerWithConfig(config domain.Config, appLogger domain.Logger) *Container {
	if appLogger == nil {
		appLogger = logger.NewLogger(config.GetLogLevel())
	}

	processor := service.NewPDFProcessor(componentLogger(appLogger, "pdf"))
	store := repository.NewOutputStore(componentLogger(appLogger, "output"))
	mergeLog := repository.NewMergeLogRepository(config.GetMergeLogPath(), componentLogger(appLogger, "merge_log"))

	records := []domain.MergeRecordRepository{mergeLog}

	// Supabase is optional; without credentials merges stay local
	supabaseLogger := componentLogger(appLogger, "supabase")
	supabaseClient := repository.NewSupabaseClient(config, supabaseLogger)
	var storageService *service.StorageService
	if supabaseClient.Enabled() {
		if err := supabaseClient.Initialize(); err != nil {
			supabaseLogger.Error("Supabase disabled", err)
		} else {
			records = append(records, repository.NewSupabaseMergeRecordRepository(supabaseClient, supabaseLogger))
			storageService = service.NewStorageService(
				func() service.ObjectStorage {
					if db := supabaseClient.DB(); db != nil {
						return db.Storage
					}
					return nil
				},
				config.GetSupabaseBucket(),
				componentLogger(appLogger, "storage"),
			)
		}
	}

	mergeService := service.NewMergeService(processor, store, componentLogger(appLogger, "merge"), records...)
	if storageService != nil {
		mergeService.WithPublisher(storageService)
	}

	return &Container{
		Config:         config,
		Logger:         appLogger,
		SupabaseClient: supabaseClient,
		MergeLog:       mergeLog,
		PDFProcessor:   processor,
		MergeService:   mergeService,
		SplitService:   service.NewSplitService(processor, store, componentLogger(appLogger, "split")),
		SessionService: service.NewSessionService(componentLogger(appLogger, "session")).WithIdleTTL(config.GetSessionIdleTTL()),
		PreviewService: service.NewPreviewService(config.GetPreviewMaxWidth(), componentLogger(appLogger, "preview")),
		StorageService: storageService,
	}
}

// componentLogger tags every entry of l with the component name when the
// logger supports child loggers.
func componentLogger(l domain.Logger, component string) domain.Logger {
	if scoped, ok := l.(interface {
		With(fields ...interface{}) domain.Logger
	}); ok {
		return scoped.With("component", component)
	}
	return l
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
