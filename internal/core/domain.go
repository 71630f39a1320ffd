package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	// Transaction is a single expense belonging to a ledger's user.
	Transaction struct {
		Date   string // YYYYMMDD
		Amount decimal.Decimal
	}

	// RawRecord is an unparsed record as read from a source.
	RawRecord struct {
		Ref    string // where the record came from, e.g. "input.txt:12"
		Fields []string
	}

	// FormattedTransaction is a Transaction prepared for display.
	FormattedTransaction struct {
		Date   string // YYYY-MM-DD
		Amount float64
	}
)

var (
	ErrSourceUnavailable = errors.New("ledger source unavailable")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidMonth      = errors.New("invalid month")
)

// ParseRecord splits a raw record into its user id and transaction.
// The record must have exactly three fields: user id, YYYYMMDD date and a
// decimal amount. The amount sign is not checked.
func ParseRecord(fields []string) (string, Transaction, error) {
	if len(fields) != 3 {
		return "", Transaction{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedRecord, len(fields))
	}
	userID, date, amount := fields[0], strings.TrimSpace(fields[1]), strings.TrimSpace(fields[2])
	if userID == "" {
		return "", Transaction{}, fmt.Errorf("%w: empty user id", ErrMalformedRecord)
	}
	if !isDigits(date, 8) {
		return "", Transaction{}, fmt.Errorf("%w: %w %q", ErrMalformedRecord, ErrInvalidDate, date)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", Transaction{}, fmt.Errorf("%w: amount %q is not numeric", ErrMalformedRecord, amount)
	}
	return userID, Transaction{Date: date, Amount: d}, nil
}

// FormatDate renders a stored YYYYMMDD date as YYYY-MM-DD.
// Values of any other length are returned unchanged.
func FormatDate(date string) string {
	if len(date) != 8 {
		return date
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:8]
}

func normalizeDate(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "-", "")
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
