package core

// Ledger is the ordered, read-only set of transactions of a single user.
// Records with the same date are all retained, in source order.
type Ledger struct {
	userID string
	txs    []Transaction
}

// NewLedger builds a ledger for userID. The slice is copied, so later
// changes by the caller do not affect the ledger.
func NewLedger(userID string, txs []Transaction) *Ledger {
	return &Ledger{
		userID: userID,
		txs:    append([]Transaction(nil), txs...),
	}
}

// UserID returns the user the ledger belongs to.
func (l *Ledger) UserID() string {
	if l == nil {
		return ""
	}
	return l.userID
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.txs)
}

// IsEmpty reports whether the ledger holds no transactions.
func (l *Ledger) IsEmpty() bool {
	return l.Len() == 0
}

// Transactions returns a copy of the ledger records in source order.
func (l *Ledger) Transactions() []Transaction {
	if l == nil {
		return nil
	}
	return append([]Transaction(nil), l.txs...)
}
