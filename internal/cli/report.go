package cli

import (
	"io"

	"accounting/internal/core"
)

// ReportOptions selects the optional figures of a report.
type ReportOptions struct {
	Day   string
	Month string
	// ListTransactions prints every transaction after the totals.
	ListTransactions bool
}

// WriteReport prints a non-interactive summary of the ledger and returns
// the first write error.
func WriteReport(w io.Writer, ledger *core.Ledger, opts ReportOptions) error {
	ew := &errWriter{w: w}
	p := &Prompt{out: ew}

	if ledger.IsEmpty() {
		p.printf("No transactions found for user ID: %s\n", ledger.UserID())
		return ew.err
	}

	p.printf("User ID: %s\n", ledger.UserID())
	p.printf("Transactions: %d\n", ledger.Len())
	p.printf("Total Expenses: %s\n", formatAmount(ledger.TotalExpenses()))
	if opts.Day != "" {
		p.printDay(ledger, opts.Day)
	}
	if opts.Month != "" {
		p.printMonth(ledger, opts.Month)
	}
	if opts.ListTransactions {
		for _, tx := range ledger.AllTransactions() {
			p.printf("Date: %s, Amount: %s\n", tx.Date, formatAmount(tx.Amount))
		}
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}
