package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/importer"
	"github.com/ksalp/lernportal/internal/store"
	"github.com/ksalp/lernportal/internal/wire"
)

var (
	importTitle     string
	importSubject   string
	importSeparator string
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import learn sets into the local database",
		Long: "Import an export file written by the backend, or a plain exercise list.\n" +
			"Exercise lists are JSON arrays, JSON lines or \"question; answer; alternate...\" text lines\n" +
			"and need --title and --subject.",
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}
	cmd.Flags().StringVar(&importTitle, "title", "", "title of the new learn set (exercise lists)")
	cmd.Flags().StringVar(&importSubject, "subject", "", "subject of the new learn set (exercise lists)")
	cmd.Flags().StringVar(&importSeparator, "separator", importer.DefaultSeparator, "field separator of text lines")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	c, err := loadClientConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	sets, err := parseImport(data)
	if err != nil {
		return err
	}

	st, err := store.NewSQLite(c.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.SaveAccount(ctx, store.Account{ID: account, Name: account}); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	exercises := 0
	for _, ls := range sets {
		if err := st.SaveLearnSet(ctx, ls); err != nil {
			return fmt.Errorf("failed to save %q: %w", ls.Title, err)
		}
		exercises += len(ls.Exercises)
		printf(os.Stdout, "%s\t%s (%d exercises)\n", ls.ID, ls.Label(), len(ls.Exercises))
	}
	printf(os.Stdout, "imported %d learn sets with %d exercises into %s\n", len(sets), exercises, c.DBPath)
	return nil
}

// parseImport recognises an export document by its version field; anything
// else is read as an exercise list.
func parseImport(data []byte) ([]*learnset.LearnSet, error) {
	var export wire.ExportData
	if err := json.Unmarshal(data, &export); err == nil && export.Version != "" {
		sets := importer.FromExport(export, account)
		if len(sets) == 0 {
			return nil, errors.New("export file contains no learn sets")
		}
		return sets, nil
	}

	if importTitle == "" || importSubject == "" {
		return nil, errors.New("exercise lists need --title and --subject")
	}
	ls := learnset.New(importTitle, importSubject, account)
	if importer.Apply(ls, importer.Parse(string(data), importSeparator)) == 0 {
		return nil, errors.New("no exercises found in file")
	}
	return []*learnset.LearnSet{ls}, nil
}
