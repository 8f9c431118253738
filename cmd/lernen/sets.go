package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/portal"
	"github.com/ksalp/lernportal/internal/store"
)

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List available learn sets",
		Args:  cobra.NoArgs,
		RunE:  runSetsCmd,
	}
}

func runSetsCmd(cmd *cobra.Command, _ []string) error {
	c, err := loadClientConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ctx := context.Background()

	var sets []learnset.LearnSet
	if offline {
		st, err := store.NewSQLite(c.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer st.Close()
		sets, err = st.ListLearnSets(ctx)
		if err != nil {
			return fmt.Errorf("failed to list learn sets: %w", err)
		}
	} else {
		sets, err = portal.NewClient(c.PortalURL, portal.WithToken(c.Token)).ListLearnSets(ctx)
		if err != nil {
			return fmt.Errorf("failed to list learn sets: %w", err)
		}
	}

	if len(sets) == 0 {
		logErrln("no learn sets found")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printf(tw, "ID\tLEARN SET\tSIZE\tCLASS\tOWNER\n")
	for _, ls := range sets {
		owner := ls.OwnerName
		if owner == "" {
			owner = ls.OwnerID
		}
		printf(tw, "%s\t%s\t%d\t%s\t%s\n", ls.ID, ls.Label(), ls.Size, ls.Class, owner)
	}
	return tw.Flush()
}
