package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"copro-billing/internal/app"
	"copro-billing/internal/config"
	"copro-billing/internal/database"
	"copro-billing/internal/domain"
	"copro-billing/internal/export"
	"copro-billing/internal/logger"
)

const usage = `usage: reconciler <command> [flags]

commands:
  migrate     apply the database migrations and print the schema version
  import      preview or commit a bank statement
  statement   print the annual statements of a building
  close       close the exercise of a year

run "reconciler <command> -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	switch command {
	case "migrate", "import", "statement", "close":
	case "-h", "--help", "help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := cliLogger(cfg.Log)

	// --- Dependency Injection (Wiring the application) ---
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	if command == "migrate" {
		version, dirty, err := database.Version(db)
		if err != nil {
			return err
		}
		fmt.Printf("schema version %d (dirty: %t) at %s\n", version, dirty, cfg.Database.Path)
		return nil
	}

	a := app.New(db, cfg, log)
	switch command {
	case "import":
		return runImport(ctx, a, args)
	case "statement":
		return runStatement(ctx, a, args)
	default:
		return runClose(ctx, a, args)
	}
}

// cliLogger logs to stderr so that reports written to stdout stay parseable.
func cliLogger(cfg config.LogConfig) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return logger.NewWithWriter(out).Level(logger.ParseLevel(cfg.Level))
}

func runImport(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	building := fs.String("building", "", "Building id (required)")
	format := fs.String("format", string(domain.FormatGeneric), "Statement layout: fixed or generic")
	file := fs.String("file", "", "Path to the bank statement CSV file (required)")
	commit := fs.Bool("commit", false, "Insert the valid rows instead of only previewing them")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *building == "" || *file == "" {
		fs.Usage()
		return errors.New("flags -building and -file are required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("could not open statement: %w", err)
	}
	defer f.Close()

	if !*commit {
		preview, err := a.Imports.Preview(ctx, *building, domain.StatementFormat(*format), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d rows: %d to import, %d duplicates, %d invalid (dry run, use -commit to import)\n",
			preview.Total, preview.ValidCount, preview.Duplicates, preview.Invalid)
		return printJSON(os.Stdout, preview)
	}

	result, err := a.Imports.Commit(ctx, *building, domain.StatementFormat(*format), f)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, result)
}

func runStatement(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("statement", flag.ContinueOnError)
	building := fs.String("building", "", "Building id (required)")
	year := fs.Int("year", time.Now().Year()-1, "Exercise year")
	owner := fs.String("owner", "", "Restrict the output to one owner id")
	format := fs.String("format", "table", "Output format: table, json, csv or xlsx")
	outPath := fs.String("out", "", "Write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *building == "" {
		fs.Usage()
		return errors.New("flag -building is required")
	}
	switch *format {
	case "table", "json", "csv", "xlsx":
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	report, err := a.Reconciliation.BuildingStatements(ctx, *building, *year)
	if err != nil {
		return err
	}
	if *owner != "" {
		st, err := a.Reconciliation.OwnerStatement(ctx, *building, *year, *owner)
		if err != nil {
			return err
		}
		report.Statements = []domain.AnnualStatement{*st}
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "json":
		if *owner != "" {
			return printJSON(out, report.Statements[0])
		}
		return printJSON(out, report)
	case "csv":
		return export.WriteCSV(out, *report)
	case "xlsx":
		return export.WriteXLSX(out, *report)
	default:
		_, err := fmt.Fprint(out, export.Table(*report))
		return err
	}
}

func runClose(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("close", flag.ContinueOnError)
	building := fs.String("building", "", "Building id (required)")
	year := fs.Int("year", 0, "Exercise year (required)")
	confirm := fs.String("confirm", "", `Confirmation text, exactly "CLOTURER <year>"`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *building == "" || *year == 0 {
		fs.Usage()
		return errors.New("flags -building and -year are required")
	}

	ex, err := a.Exercises.Get(ctx, *building, *year)
	if err != nil {
		return err
	}
	closed, err := a.Exercises.Close(ctx, *building, ex.ID, *confirm)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, closed)
}

func printJSON(w io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
