package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"accounting/internal/amqp"
	"accounting/internal/core"
	"accounting/internal/log"
	"accounting/internal/sources"
	"accounting/internal/storage"
)

const DefaultImportBatchSize = 500

// BatchWriter persists parsed ledger rows.
type BatchWriter interface {
	InsertBatch(ctx context.Context, batch []storage.ImportRow) error
}

// ImportReport describes the outcome of an import.
type ImportReport struct {
	Source    string
	Imported  int
	Malformed []MalformedRecord
}

// ImportService copies every well-formed record of a source into a store.
type ImportService struct {
	source    sources.RecordSource
	store     BatchWriter
	events    EventPublisher
	batchSize int
	logger    *log.Logger
}

func NewImportService(source sources.RecordSource, store BatchWriter, events EventPublisher, batchSize int, logger *log.Logger) *ImportService {
	if batchSize < 1 {
		batchSize = DefaultImportBatchSize
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ImportService{
		source:    source,
		store:     store,
		events:    events,
		batchSize: batchSize,
		logger:    logger.WithComponent(log.ComponentImport),
	}
}

// Import reads the source, parses records and writes them in batches. Parsing
// and writing run concurrently; the first write error cancels the parser.
// Malformed records are skipped, exactly as when loading a ledger.
func (s *ImportService) Import(ctx context.Context) (ImportReport, error) {
	report := ImportReport{Source: s.source.Name()}

	raw, err := s.source.ReadRecords(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %s: %w", core.ErrSourceUnavailable, report.Source, err)
	}

	batches := make(chan []storage.ImportRow)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		batch := make([]storage.ImportRow, 0, s.batchSize)
		for _, rec := range raw {
			userID, tx, err := core.ParseRecord(rec.Fields)
			if err != nil {
				report.Malformed = append(report.Malformed, MalformedRecord{Ref: rec.Ref, Err: err})
				s.logger.WarnContext(gctx, "Skipping malformed record", log.FieldRef, rec.Ref, log.FieldError, err)
				continue
			}
			batch = append(batch, storage.ImportRow{UserID: userID, Tx: tx, SourceRef: rec.Ref})
			if len(batch) == s.batchSize {
				select {
				case batches <- batch:
				case <-gctx.Done():
					return gctx.Err()
				}
				batch = make([]storage.ImportRow, 0, s.batchSize)
			}
		}
		if len(batch) > 0 {
			select {
			case batches <- batch:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	imported := 0
	g.Go(func() error {
		for batch := range batches {
			if err := s.store.InsertBatch(gctx, batch); err != nil {
				return fmt.Errorf("write batch: %w", err)
			}
			imported += len(batch)
			s.logger.DebugContext(gctx, "Batch imported", log.FieldBatchSize, len(batch), log.FieldImported, imported)
		}
		return nil
	})

	err = g.Wait()
	report.Imported = imported
	if err != nil {
		return report, err
	}

	s.logger.InfoContext(ctx, "Ledger imported",
		log.FieldSource, report.Source,
		log.FieldImported, report.Imported,
		log.FieldMalformed, len(report.Malformed))

	if s.events != nil {
		msg := amqp.NewLedgerImportedMessage(report.Source, report.Imported, len(report.Malformed))
		if err := s.events.PublishLedgerImported(ctx, msg); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish ledger imported event", log.FieldError, err)
		}
	}
	return report, nil
}
