package services

import (
	"context"
	"fmt"

	"accounting/internal/amqp"
	"accounting/internal/core"
	"accounting/internal/log"
	"accounting/internal/sources"
)

// EventPublisher announces ledger lifecycle events. A nil publisher disables events.
type EventPublisher interface {
	PublishLedgerLoaded(ctx context.Context, msg *amqp.LedgerLoadedMessage) error
	PublishLedgerImported(ctx context.Context, msg *amqp.LedgerImportedMessage) error
}

// MalformedRecord is a source record that was skipped because it could not be parsed.
type MalformedRecord struct {
	Ref string
	Err error
}

// LoadReport describes what a ledger load read from its source.
type LoadReport struct {
	Source    string
	Scanned   int
	Matched   int
	Malformed []MalformedRecord
}

// LedgerService loads per-user ledgers from a record source.
type LedgerService struct {
	source sources.RecordSource
	events EventPublisher
	logger *log.Logger
}

func NewLedgerService(source sources.RecordSource, events EventPublisher, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &LedgerService{
		source: source,
		events: events,
		logger: logger.WithComponent(log.ComponentLedger),
	}
}

// Load reads the source once and keeps, in source order, the records whose
// user id equals userID exactly. Records that cannot be parsed are skipped
// and listed in the report. A source that cannot be read yields an error
// wrapping core.ErrSourceUnavailable and no ledger. No matching records is
// not an error: the ledger is simply empty.
func (s *LedgerService) Load(ctx context.Context, userID string) (*core.Ledger, LoadReport, error) {
	report := LoadReport{Source: s.source.Name()}

	raw, err := s.source.ReadRecords(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read ledger source",
			log.NewFields().
				WithOperation(log.OpLoad).
				WithErrorType(log.ErrorTypeSource).
				WithError(err).
				ToSlice()...)
		return nil, report, fmt.Errorf("%w: %s: %w", core.ErrSourceUnavailable, report.Source, err)
	}

	var txs []core.Transaction
	for _, rec := range raw {
		report.Scanned++
		recUser, tx, err := core.ParseRecord(rec.Fields)
		if err != nil {
			report.Malformed = append(report.Malformed, MalformedRecord{Ref: rec.Ref, Err: err})
			s.logger.WarnContext(ctx, "Skipping malformed record",
				log.FieldRef, rec.Ref, log.FieldError, err)
			continue
		}
		if recUser != userID {
			continue
		}
		txs = append(txs, tx)
	}
	report.Matched = len(txs)

	ledger := core.NewLedger(userID, txs)
	s.logger.InfoContext(ctx, "Ledger loaded",
		log.NewFields().
			WithOperation(log.OpLoad).
			WithLoad(userID, report.Source, report.Scanned, report.Matched, len(report.Malformed)).
			ToSlice()...)

	s.publishLoaded(ctx, userID, report)
	return ledger, report, nil
}

func (s *LedgerService) publishLoaded(ctx context.Context, userID string, report LoadReport) {
	if s.events == nil {
		s.logger.DebugContext(ctx, "Event publisher not configured, skipping ledger loaded event")
		return
	}
	msg := amqp.NewLedgerLoadedMessage(userID, report.Source, report.Matched, len(report.Malformed))
	if err := s.events.PublishLedgerLoaded(ctx, msg); err != nil {
		// The ledger is usable regardless.
		s.logger.ErrorContext(ctx, "Failed to publish ledger loaded event",
			log.FieldUserID, userID, log.FieldError, err)
	}
}
