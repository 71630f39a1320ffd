package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"accounting/internal/backend"
	"accounting/internal/cli"
	"accounting/internal/config"
	"accounting/internal/core"
	"accounting/internal/log"
	"accounting/internal/services"
	"accounting/internal/sources/file"
	"accounting/internal/storage"
)

// appContext carries what every command needs.
type appContext struct {
	cfg    *config.Config
	logger *log.Logger
}

var app struct {
	Query  queryCmd  `cmd:"" help:"Interactive expense queries for one user."`
	Report reportCmd `cmd:"" help:"Print a one-shot expense report for one user."`
	Import importCmd `cmd:"" help:"Import a transaction file into the SQLite ledger store."`
}

type queryCmd struct {
	User string `help:"User ID to load; asked interactively when empty."`
}

type reportCmd struct {
	User  string `required:"" help:"User ID to report on."`
	Day   string `help:"Day to total (YYYY-MM-DD)."`
	Month string `help:"Month to average (YYYY-MM)."`
	List  bool   `help:"List every transaction."`
}

type importCmd struct {
	File string `type:"path" help:"Transaction file to import; defaults to LEDGER_FILE."`
	DB   string `name:"db" type:"path" help:"SQLite database path; defaults to SQLITE_DB_PATH."`
}

func main() {
	cli.LoadEnvFile()

	ctx := kong.Parse(&app,
		kong.Name("accounting"),
		kong.Description("Per-user expense queries over a transaction ledger."))

	cfg, err := cli.LoadAndValidateConfig()
	ctx.FatalIfErrorf(err)

	logger := cli.SetupLogger(cfg)
	ctx.FatalIfErrorf(ctx.Run(&appContext{cfg: cfg, logger: logger}))
}

// openLedger wires the configured source and event publisher into a
// ledger service.
func openLedger(ctx context.Context, a *appContext) (*services.LedgerService, *backend.BackendResult, error) {
	bc, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(a.logger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, nil, err
	}
	return services.NewLedgerService(res.Source, res.Events, a.logger), res, nil
}

func (c *queryCmd) Run(a *appContext) error {
	ctx, stop := cli.ShutdownContext(a.logger)
	defer stop()

	svc, res, err := openLedger(ctx, a)
	if err != nil {
		return err
	}
	defer closeBackend(a.logger, res)

	load := func(ctx context.Context, userID string) (*core.Ledger, error) {
		ledger, _, err := svc.Load(ctx, userID)
		return ledger, err
	}
	return cli.NewPrompt(os.Stdin, os.Stdout, load, a.logger).Run(ctx, c.User)
}

func (c *reportCmd) Run(a *appContext) error {
	ctx, stop := cli.ShutdownContext(a.logger)
	defer stop()

	svc, res, err := openLedger(ctx, a)
	if err != nil {
		return err
	}
	defer closeBackend(a.logger, res)

	ledger, _, err := svc.Load(ctx, c.User)
	if err != nil {
		return err
	}
	return cli.WriteReport(os.Stdout, ledger, cli.ReportOptions{
		Day:              c.Day,
		Month:            c.Month,
		ListTransactions: c.List,
	})
}

func (c *importCmd) Run(a *appContext) error {
	ctx, stop := cli.ShutdownContext(a.logger)
	defer stop()

	path := c.File
	if path == "" {
		path = a.cfg.LedgerFile
	}
	dbPath := c.DB
	if dbPath == "" {
		dbPath = a.cfg.SQLiteDBPath
	}

	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	bc, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return err
	}
	events, closeEvents := backend.NewFactory(a.logger).CreateEvents(ctx, bc)
	if closeEvents != nil {
		defer closeEvents()
	}

	report, err := services.NewImportService(file.New(path), repo, events, a.cfg.ImportBatchSize, a.logger).Import(ctx)
	if err != nil {
		return err
	}

	stored, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Import finished",
		log.FieldSource, report.Source,
		log.FieldImported, report.Imported,
		log.FieldMalformed, len(report.Malformed),
		"database", dbPath,
		"stored", stored)
	return nil
}

func closeBackend(logger *log.Logger, res *backend.BackendResult) {
	if err := res.Close(); err != nil {
		logger.Warn("Failed to release backend", log.FieldError, err)
	}
}
