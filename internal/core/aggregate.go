package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Result is the outcome of a day or month query. Found is false when no
// transaction matched, which is distinct from a matched sum of zero.
type Result struct {
	Value float64
	Found bool
}

// NoData is the result of a query that matched nothing.
func NoData() Result {
	return Result{}
}

func found(v float64) Result {
	return Result{Value: v, Found: true}
}

// Float64 returns the value and whether the query matched any transaction.
func (r Result) Float64() (float64, bool) {
	return r.Value, r.Found
}

func (r Result) String() string {
	if !r.Found {
		return "no data"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// TotalExpenses sums every transaction. An empty ledger yields 0.
func (l *Ledger) TotalExpenses() float64 {
	sum := decimal.Zero
	for _, tx := range l.records() {
		sum = sum.Add(tx.Amount)
	}
	return sum.InexactFloat64()
}

// DayExpenses sums the transactions of day, given as YYYY-MM-DD.
func (l *Ledger) DayExpenses(day string) Result {
	key := normalizeDate(day)
	sum, n := l.sumWhere(func(date string) bool { return date == key })
	if n == 0 {
		return NoData()
	}
	return found(sum.InexactFloat64())
}

// MonthExpenses returns the average daily spend of month, given as YYYY-MM:
// the month total divided by the number of calendar days in that month,
// however many days actually had transactions.
func (l *Ledger) MonthExpenses(month string) Result {
	prefix := normalizeDate(month)
	if !isDigits(prefix, 6) {
		return NoData()
	}
	year, _ := strconv.Atoi(prefix[:4])
	m, _ := strconv.Atoi(prefix[4:6])
	days, err := DaysInMonth(year, m)
	if err != nil {
		return NoData()
	}

	sum, n := l.sumWhere(func(date string) bool { return strings.HasPrefix(date, prefix) })
	if n == 0 {
		return NoData()
	}
	return found(sum.Div(decimal.NewFromInt(int64(days))).InexactFloat64())
}

// AllTransactions lists every transaction in ledger order with display dates.
func (l *Ledger) AllTransactions() []FormattedTransaction {
	txs := l.records()
	out := make([]FormattedTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FormattedTransaction{
			Date:   FormatDate(tx.Date),
			Amount: tx.Amount.InexactFloat64(),
		})
	}
	return out
}

func (l *Ledger) sumWhere(match func(date string) bool) (decimal.Decimal, int) {
	sum := decimal.Zero
	n := 0
	for _, tx := range l.records() {
		if match(tx.Date) {
			sum = sum.Add(tx.Amount)
			n++
		}
	}
	return sum, n
}

func (l *Ledger) records() []Transaction {
	if l == nil {
		return nil
	}
	return l.txs
}
