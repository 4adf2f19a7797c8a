package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Simplici0/framequote/internal/config"
	"github.com/Simplici0/framequote/internal/db"
	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/export"
	"github.com/Simplici0/framequote/internal/logging"
	"github.com/Simplici0/framequote/internal/migrations"
	"github.com/Simplici0/framequote/internal/store"
)

const defaultDBFile = "~/.framequote/framequote.db"

// app holds what the subcommands share once the root pre-run has opened the
// database.
type app struct {
	envFile  string
	log      *logrus.Logger
	db       *sql.DB
	prices   *store.PriceTable
	projects *store.Projects
	engine   *estimate.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "estimator",
		Short:         "Building material estimator and quote generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file with DB_PATH, LOG_LEVEL and similar settings")
	flags.String("db", "", "sqlite database path (default "+defaultDBFile+")")
	flags.StringP("loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error, fatal")

	root.AddCommand(newQuoteCmd(a), newProjectCmd(a), newPricesCmd(a))
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	v, err := config.New(a.envFile)
	if err != nil {
		return err
	}
	v.SetDefault(config.KeyDBPath, defaultDBFile)
	v.SetDefault(config.KeyLogLevel, "warn")
	if err := v.BindPFlag(config.KeyDBPath, cmd.Flags().Lookup("db")); err != nil {
		return err
	}
	if err := v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("loglevel")); err != nil {
		return err
	}
	cfg := config.Decode(v)

	if a.log, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, true); err != nil {
		return err
	}

	path, err := homedir.Expand(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("expand database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	if a.db, err = db.Open(path); err != nil {
		return err
	}
	if err := migrations.Up(a.db, a.log); err != nil {
		return err
	}
	a.log.WithField("db", path).Debug("database ready")

	kv := store.NewSQLStore(a.db)
	if created, err := store.EnsurePrices(cmd.Context(), kv); err != nil {
		return err
	} else if created {
		a.log.Debug("created empty default price table")
	}
	a.prices = store.NewPriceTable(kv)
	a.projects = store.NewProjects(kv)
	a.engine = estimate.NewEngine(a.prices, a.log)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// output opens the --out file, or returns stdout when it is empty.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

// render writes the state as json or one of the export formats.
func render(w io.Writer, format string, st estimate.State) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st.View())
	}
	f, ok := export.FormatFor(format)
	if !ok {
		return fmt.Errorf("unknown format %q (use json, %v)", format, export.Extensions())
	}
	return f.Render(w, export.Build(st))
}
