package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"accounting/internal/core"
	"accounting/internal/sources"
)

// DefaultPath is the ledger file read when none is configured.
const DefaultPath = "input.txt"

var _ sources.RecordSource = (*Source)(nil)

// Source reads whitespace-separated "userId date amount" lines from a file.
type Source struct {
	path string
}

func New(path string) *Source {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Source{path: path}
}

// Name returns the file path.
func (s *Source) Name() string {
	return "file:" + s.path
}

// ReadRecords returns one record per non-blank line. Lines are split on
// whitespace but not validated here.
func (s *Source) ReadRecords(ctx context.Context) ([]core.RawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	var out []core.RawRecord
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		out = append(out, core.RawRecord{
			Ref:    fmt.Sprintf("%s:%d", s.path, lineNo),
			Fields: fields,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	return out, nil
}
