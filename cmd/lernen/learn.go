package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	practicesession "github.com/ksalp/lernportal/internal/domain/practice_session"
	"github.com/ksalp/lernportal/internal/infrastructure/config"
	"github.com/ksalp/lernportal/internal/pool"
	"github.com/ksalp/lernportal/internal/selection"
	"github.com/ksalp/lernportal/internal/service"
	"github.com/ksalp/lernportal/internal/tui"
)

func newLearnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <learnset-id>...",
		Short: "Start a practice session over one or more learn sets",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLearnCmd,
	}
}

func runLearnCmd(cmd *cobra.Command, args []string) error {
	c, err := loadClientConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLog, err := openLogger(c.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := openBackend(ctx, c, logger)
	if err != nil {
		return err
	}
	defer b.close()

	rec := service.NewRecordingService(b.sink, logger, c.Workers)
	defer rec.Close()

	s, err := practicesession.Start(ctx, b.source, splitIDs(args), rec, sessionConfig(c, b.identity, logger))
	if err != nil {
		return startError(err)
	}
	logger.Info("session started",
		"session_id", s.ID,
		"exercises", s.Pool().Len(),
		"identity_valid", b.identity.Valid,
	)

	model := tui.NewModel(s)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	rec.Close()
	logger.Info("session finished", "session_id", s.ID, "answered", model.Answered())

	if rec.ConnectionError() {
		logErrln("some answers could not be saved")
	}
	printf(os.Stdout, "%s\n", s.Stats().String())
	return nil
}

func sessionConfig(c config.Client, identity practicesession.Identity, logger *slog.Logger) practicesession.SessionConfig {
	cfg := practicesession.DefaultConfig()
	cfg.Identity = identity
	cfg.MaxLineLength = c.MaxLineLength
	cfg.Logger = logger
	if c.Seed != 0 {
		cfg.Rand = selection.NewSource(c.Seed)
	}
	return cfg
}

// startError turns a load failure into a message for the terminal.
func startError(err error) error {
	switch {
	case errors.Is(err, pool.ErrNoLearnSets):
		return errors.New("no learn set ids given")
	case errors.Is(err, pool.ErrEmptyPool):
		return errors.New("the selected learn sets contain no exercises")
	case errors.Is(err, pool.ErrConnectivity):
		return fmt.Errorf("could not load learn sets: %w", err)
	case errors.Is(err, pool.ErrMalformedBundle):
		return fmt.Errorf("backend sent an incomplete bundle: %w", err)
	}
	return err
}

func logErrln(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
}
