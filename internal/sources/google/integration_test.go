//go:build integration

package google

import (
	"context"
	"os"
	"testing"
	"time"
)

// Integration tests require real Google Sheets credentials
// Run with: go test -tags=integration ./internal/sources/google

func TestIntegration_ReadRecords(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := NewClient(ctx, spreadsheetID, os.Getenv("GOOGLE_SHEET_NAME"))
	if err != nil {
		t.Skipf("Cannot create client: %v", err)
	}

	recs, err := client.ReadRecords(ctx)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	t.Logf("read %d records from %s", len(recs), client.Name())
}

func TestIntegration_ContextCancellation(t *testing.T) {
	if os.Getenv("GOOGLE_SPREADSHEET_ID") == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set")
	}

	client, err := NewClient(context.Background(), os.Getenv("GOOGLE_SPREADSHEET_ID"), os.Getenv("GOOGLE_SHEET_NAME"))
	if err != nil {
		t.Skip("Cannot create client, skipping context test")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ReadRecords(ctx); err == nil {
		t.Error("Expected context cancellation error")
	}
}
