package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRecord(t *testing.T) {
	cases := []struct {
		in     string
		user   string
		date   string
		amount string
		ok     bool
	}{
		{"X 20240422 399", "X", "20240422", "399", true},
		{"18501179 20240415 128000000", "18501179", "20240415", "128000000", true},
		{"u1 20230101 12.5", "u1", "20230101", "12.5", true},
		{"u1 20230101 -3", "u1", "20230101", "-3", true}, // sign is not validated
		{"u1 20230101", "", "", "", false},
		{"u1 20230101 1 extra", "", "", "", false},
		{"u1 2023-01-01 1", "", "", "", false},
		{"u1 2023010 1", "", "", "", false},
		{"u1 20230101 abc", "", "", "", false},
		{"", "", "", "", false},
	}
	for _, tc := range cases {
		user, tx, err := ParseRecord(strings.Fields(tc.in))
		if !tc.ok {
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("%q expected ErrMalformedRecord, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q unexpected error: %v", tc.in, err)
		}
		if user != tc.user || tx.Date != tc.date || tx.Amount.String() != tc.amount {
			t.Fatalf("%q parsed as (%s, %s, %s)", tc.in, user, tx.Date, tx.Amount)
		}
	}
}

func TestParseRecordInvalidDateIsAlsoMalformed(t *testing.T) {
	_, _, err := ParseRecord([]string{"u", "2024-1-1", "1"})
	if !errors.Is(err, ErrInvalidDate) || !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected both ErrInvalidDate and ErrMalformedRecord, got %v", err)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("20240422"); got != "2024-04-22" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDate("2024"); got != "2024" {
		t.Fatalf("short dates should pass through, got %q", got)
	}
}

func TestNewLedgerCopiesInput(t *testing.T) {
	txs := []Transaction{mustTx(t, "20240101", "1")}
	l := NewLedger("u", txs)
	txs[0] = mustTx(t, "19990101", "9")

	got := l.Transactions()
	if len(got) != 1 || got[0].Date != "20240101" {
		t.Fatalf("ledger changed after caller mutation: %+v", got)
	}
	got[0].Date = "changed"
	if l.Transactions()[0].Date != "20240101" {
		t.Fatalf("Transactions must return a copy")
	}
	if l.UserID() != "u" || l.Len() != 1 || l.IsEmpty() {
		t.Fatalf("unexpected ledger accessors: %q %d %v", l.UserID(), l.Len(), l.IsEmpty())
	}
}

func mustTx(t *testing.T, date, amount string) Transaction {
	t.Helper()
	_, tx, err := ParseRecord([]string{"u", date, amount})
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}
	return tx
}
