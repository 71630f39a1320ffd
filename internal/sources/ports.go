package sources

import (
	"context"

	"accounting/internal/core"
)

// Ports for inbound ledger adapters.
type (
	// RecordSource reads every raw record of an external ledger, in source order.
	// Implementations acquire and release the underlying resource within a
	// single call.
	RecordSource interface {
		ReadRecords(ctx context.Context) ([]core.RawRecord, error)
		// Name identifies the source in logs and events.
		Name() string
	}
)
