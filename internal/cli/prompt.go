package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"accounting/internal/core"
	"accounting/internal/log"
)

// LoadFunc loads the ledger of a single user.
type LoadFunc func(ctx context.Context, userID string) (*core.Ledger, error)

const menu = `How can we help you?
    1. Total Expenses
    2. All Transactions
    3. Day Expenses
    4. Month Expenses
    5. Exit`

// Prompt is the interactive query session. It owns its input and output
// and never terminates the process; Run returns when the user quits or the
// input ends.
type Prompt struct {
	in     *bufio.Scanner
	out    io.Writer
	load   LoadFunc
	logger *log.Logger
}

// NewPrompt creates a prompt reading commands from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer, load LoadFunc, logger *log.Logger) *Prompt {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Prompt{
		in:     bufio.NewScanner(in),
		out:    out,
		load:   load,
		logger: logger.WithComponent(log.ComponentPrompt),
	}
}

// Run starts the session. A non-empty userID skips the id question.
// It returns nil when the user exits or input is exhausted, and the load
// error when the ledger cannot be read.
func (p *Prompt) Run(ctx context.Context, userID string) error {
	p.println("Welcome to the Accounting System")

	if userID == "" {
		id, ok := p.askUserID()
		if !ok {
			p.goodbye()
			return nil
		}
		userID = id
	}

	ledger, err := p.load(ctx, userID)
	if err != nil {
		return err
	}
	if ledger.IsEmpty() {
		p.printf("No transactions found for user ID: %s\n", userID)
	} else {
		p.printf("Initialization complete. User ID: %s\n", userID)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.println(menu)
		line, ok := p.ask("Enter command: ")
		if !ok {
			p.goodbye()
			return nil
		}

		switch normalizeCommand(line) {
		case "5", "exit":
			p.goodbye()
			return nil
		case "1", "totalexpenses":
			p.printf("Total Expenses: %s\n", formatAmount(ledger.TotalExpenses()))
		case "2", "alltransactions":
			p.println("All Transactions: ")
			for _, tx := range ledger.AllTransactions() {
				p.printf("Date: %s, Amount: %s\n", tx.Date, formatAmount(tx.Amount))
			}
		case "3", "dayexpenses":
			date, ok := p.ask("Enter the date (YYYY-MM-DD): ")
			if !ok {
				p.goodbye()
				return nil
			}
			p.printDay(ledger, date)
		case "4", "monthexpenses":
			month, ok := p.ask("Enter the month (YYYY-MM): ")
			if !ok {
				p.goodbye()
				return nil
			}
			p.printMonth(ledger, month)
		default:
			p.println("Invalid command")
		}
	}
}

// askUserID keeps asking until a numeric id is entered. It reports false
// when the user types exit or the input ends.
func (p *Prompt) askUserID() (string, bool) {
	id, ok := p.ask(`Enter your user ID or type "exit" to exit: `)
	for {
		if !ok || id == "exit" {
			return "", false
		}
		if isNumeric(id) {
			return id, true
		}
		p.logger.Debug("Rejected user id", log.FieldUserID, id)
		id, ok = p.ask("Invalid ID. Please enter a valid user ID: ")
	}
}

func (p *Prompt) printDay(ledger *core.Ledger, date string) {
	res := ledger.DayExpenses(date)
	if !res.Found {
		p.printf("No expenses found %s.\n", date)
		return
	}
	p.printf("Day Expenses on %s: %s\n", date, formatAmount(res.Value))
}

func (p *Prompt) printMonth(ledger *core.Ledger, month string) {
	res := ledger.MonthExpenses(month)
	if !res.Found {
		p.printf("No expenses found for %s.\n", month)
		return
	}
	p.printf("Month Expenses on %s: %s\n", month, formatAmount(res.Value))
}

func (p *Prompt) ask(question string) (string, bool) {
	_, _ = io.WriteString(p.out, question)
	if !p.in.Scan() {
		// EOF leaves the cursor after the question
		p.println("")
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *Prompt) goodbye() {
	p.println("Thank you for using the accounting system. Goodbye!")
}

func (p *Prompt) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

func (p *Prompt) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func normalizeCommand(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
