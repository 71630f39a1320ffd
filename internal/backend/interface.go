package backend

import (
	"context"

	"accounting/internal/services"
	"accounting/internal/sources"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the configured ledger source, the optional event
// publisher and a cleanup function releasing both.
type BackendResult struct {
	Source  sources.RecordSource
	Events  services.EventPublisher
	Cleanup CleanupFunc
}

// Close runs the cleanup function if there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Source type
	Type SourceType

	// File specific
	LedgerFile string

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// AMQP, optional for every source
	AMQPURL         string
	AMQPExchange    string
	AMQPQueue       string
	AMQPDialRetries int
}

// SourceType represents the kind of ledger source
type SourceType string

const (
	FileSource   SourceType = "file"
	SQLiteSource SourceType = "sqlite"
	SheetsSource SourceType = "sheets"
)

// String implements fmt.Stringer
func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is valid
func (st SourceType) IsValid() bool {
	switch st {
	case FileSource, SQLiteSource, SheetsSource:
		return true
	default:
		return false
	}
}
