package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReadRecordsSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	content := "X 20240422 399\n\n   \nX 20240401 650\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	recs, err := New(path).ReadRecords(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(recs), recs)
	}
	if recs[0].Ref != path+":1" || recs[1].Ref != path+":4" || recs[2].Ref != path+":5" {
		t.Fatalf("unexpected refs: %q %q %q", recs[0].Ref, recs[1].Ref, recs[2].Ref)
	}
	if got := recs[1].Fields; len(got) != 3 || got[0] != "X" || got[1] != "20240401" || got[2] != "650" {
		t.Fatalf("unexpected fields: %v", got)
	}
	// malformed lines are passed through for the loader to judge
	if len(recs[2].Fields) != 2 {
		t.Fatalf("expected 2 fields for broken line, got %v", recs[2].Fields)
	}
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.txt")).ReadRecords(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewDefaultsPath(t *testing.T) {
	if got := New("").Name(); got != "file:"+DefaultPath {
		t.Fatalf("unexpected name %q", got)
	}
}
