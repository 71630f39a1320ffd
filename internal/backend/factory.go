package backend

import (
	"context"
	"errors"
	"fmt"

	"accounting/internal/amqp"
	"accounting/internal/log"
	"accounting/internal/services"
	"accounting/internal/sources/file"
	gsheet "accounting/internal/sources/google"
	"accounting/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) *DefaultFactory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

var _ Factory = (*DefaultFactory)(nil)

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	result := &BackendResult{}
	var cleanups []CleanupFunc

	switch config.Type {
	case FileSource:
		result.Source = file.New(config.LedgerFile)
	case SQLiteSource:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		result.Source = repo
		cleanups = append(cleanups, repo.Close)
	case SheetsSource:
		cli, err := gsheet.NewClient(ctx, config.GoogleSpreadsheetID, config.GoogleSheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		result.Source = cli
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Type)
	}

	events, closeEvents := f.CreateEvents(ctx, config)
	result.Events = events
	if closeEvents != nil {
		cleanups = append(cleanups, closeEvents)
	}

	result.Cleanup = func() error {
		var errs []error
		for _, c := range cleanups {
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	f.logger.Info("Initialized ledger backend",
		log.FieldBackend, config.Type.String(),
		log.FieldSource, result.Source.Name(),
		"events_enabled", result.Events != nil)

	return result, nil
}

// CreateEvents connects the optional AMQP publisher. Events are best effort:
// when AMQP is not configured or unreachable it returns a nil publisher and
// the application carries on without them.
func (f *DefaultFactory) CreateEvents(ctx context.Context, config Config) (services.EventPublisher, CleanupFunc) {
	if config.AMQPURL == "" {
		return nil, nil
	}

	retries := config.AMQPDialRetries
	if retries < 0 {
		retries = 0
	}
	client, err := amqp.NewClient(ctx, config.AMQPURL, config.AMQPExchange, config.AMQPQueue,
		amqp.Options{DialRetries: uint64(retries)})
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without events", log.FieldError, err)
		return nil, nil
	}

	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client, client.Close
}
