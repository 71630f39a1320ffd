package google

import (
	"fmt"
	"strings"

	"accounting/internal/core"
)

var headerNames = []string{"user", "userid", "user_id", "user id"}

// parseRows converts a values matrix (as returned by Sheets API) into raw
// records. Empty rows are dropped and a header row is skipped when its first
// cell names the user column. Cells are not validated here.
func parseRows(sheetName string, values [][]interface{}) []core.RawRecord {
	out := make([]core.RawRecord, 0, len(values))
	for i, row := range values {
		cells := toStrings(row)
		if i == 0 && isHeader(cells) {
			continue
		}
		cells = trimTrailingEmpty(cells)
		if len(cells) == 0 {
			continue
		}
		out = append(out, core.RawRecord{
			Ref:    fmt.Sprintf("%s!A%d", sheetName, i+1),
			Fields: cells,
		})
	}
	return out
}

func isHeader(cells []string) bool {
	return indexOf(headerNames, safeGet(cells, 0)) != -1
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func trimTrailingEmpty(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
