package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	practicesession "github.com/ksalp/lernportal/internal/domain/practice_session"
	"github.com/ksalp/lernportal/internal/selection"
	"github.com/ksalp/lernportal/internal/simulation"
)

const defaultRounds = 100

var (
	simRounds   int
	simAccuracy float64
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <learnset-id>...",
		Short: "Run a scripted session and print how often each exercise came up",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSimulateCmd,
	}
	cmd.Flags().IntVar(&simRounds, "rounds", defaultRounds, "number of answers to give")
	cmd.Flags().Float64Var(&simAccuracy, "accuracy", 0.7, "probability of knowing an answer (0-1)")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, args []string) error {
	if simRounds <= 0 {
		return fmt.Errorf("--rounds must be positive")
	}
	if simAccuracy < 0 || simAccuracy > 1 {
		return fmt.Errorf("--accuracy must be between 0 and 1")
	}

	c, err := loadClientConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLog, err := openLogger(c.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	b, err := openBackend(ctx, c, logger)
	if err != nil {
		return err
	}
	defer b.close()

	cfg := sessionConfig(c, practicesession.Identity{}, logger)
	if c.Seed == 0 {
		c.Seed = 1
		cfg.Rand = selection.NewSource(c.Seed)
	}

	// No recorder: simulated answers stay out of the learner's history.
	s, err := practicesession.Start(ctx, b.source, splitIDs(args), nil, cfg)
	if err != nil {
		return startError(err)
	}

	learner := simulation.Accuracy{P: simAccuracy, Rnd: selection.NewSource(c.Seed + 1)}
	res, err := simulation.Run(s, learner, simRounds)
	if err != nil {
		return err
	}
	return simulation.Report(os.Stdout, s, res)
}
