// Package main provides the learner CLI for lernportal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	practicesession "github.com/ksalp/lernportal/internal/domain/practice_session"
	"github.com/ksalp/lernportal/internal/infrastructure/config"
	"github.com/ksalp/lernportal/internal/pool"
	"github.com/ksalp/lernportal/internal/portal"
	"github.com/ksalp/lernportal/internal/service"
	"github.com/ksalp/lernportal/internal/store"
)

const defaultLocalAccount = "local"

var (
	configPath string
	portalURL  string
	token      string
	dbPath     string
	logFile    string
	verbose    bool
	offline    bool
	account    string
	seed       uint64
	workers    int
	lineLength int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lernen",
		Short:        "Practice learn sets from the terminal",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "path of the TOML config file")
	flags.StringVar(&portalURL, "portal", "", "backend base URL")
	flags.StringVar(&token, "token", "", "bearer token of the learner")
	flags.StringVar(&dbPath, "db", "", "local SQLite database used with --offline")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file (\"-\" discards them)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	flags.BoolVar(&offline, "offline", false, "use the local database instead of the backend")
	flags.StringVar(&account, "account", defaultLocalAccount, "account that owns local stats with --offline")
	flags.Uint64Var(&seed, "seed", 0, "random seed for exercise selection (0 = time based)")
	flags.IntVar(&workers, "workers", 0, "concurrent answer uploads")
	flags.IntVar(&lineLength, "max-line-length", 0, "width of the learn set summary")

	rootCmd.AddCommand(newLearnCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newTokenCmd())

	return rootCmd
}

// loadClientConfig resolves defaults, then the config file, then flags.
func loadClientConfig(cmd *cobra.Command) (config.Client, error) {
	file, err := config.LoadClientFile(configPath)
	if err != nil {
		return config.Client{}, err
	}
	c := file.Apply(config.DefaultClient())

	flags := cmd.Flags()
	if flags.Changed("portal") {
		c.PortalURL = portalURL
	}
	if flags.Changed("token") {
		c.Token = token
	}
	if flags.Changed("db") {
		c.DBPath = dbPath
	}
	if flags.Changed("log-file") {
		c.LogPath = logFile
	}
	if flags.Changed("seed") {
		c.Seed = seed
	}
	if flags.Changed("workers") && workers > 0 {
		c.Workers = workers
	}
	if flags.Changed("max-line-length") && lineLength > 3 {
		c.MaxLineLength = lineLength
	}
	return c, nil
}

// openLogger returns a JSON logger writing to path. The terminal belongs to
// the TUI, so logs never go to stdout.
func openLogger(path string) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if path == "" || path == "-" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

// backend is where a session loads its bundle and persists its answers.
type backend struct {
	source   pool.Source
	sink     service.AnswerSink
	identity practicesession.Identity
	close    func()
}

func openBackend(ctx context.Context, c config.Client, logger *slog.Logger) (*backend, error) {
	if offline {
		st, err := store.NewSQLite(c.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		view := st.ForAccount(account, logger)
		identity := practicesession.Identity{AccountID: account, Name: account, Valid: account != ""}
		closeDB := func() {
			if err := st.Close(); err != nil {
				logErrf("failed to close db: %v\n", err)
			}
		}
		return &backend{source: view, sink: view, identity: identity, close: closeDB}, nil
	}

	client := portal.NewClient(c.PortalURL, portal.WithToken(c.Token))
	b := &backend{source: client, sink: client, close: func() {}}
	if c.Token == "" {
		return b, nil
	}

	acc, err := client.Account(ctx)
	if err != nil {
		// Loading the bundle reports connectivity problems to the user.
		logger.Warn("failed to resolve account, continuing as guest", "error", err)
		return b, nil
	}
	if acc.Valid && acc.Info != nil {
		b.identity = practicesession.Identity{
			Name:    acc.Info.Name,
			Classes: acc.Info.Classes,
			Valid:   true,
		}
	}
	return b, nil
}

// splitIDs accepts ids as separate arguments or joined with '.'.
func splitIDs(args []string) []string {
	var ids []string
	for _, arg := range args {
		for _, id := range strings.Split(arg, ".") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
