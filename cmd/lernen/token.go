package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksalp/lernportal/internal/auth"
)

var (
	tokenSecret  string
	tokenName    string
	tokenClasses []string
	tokenTTL     time.Duration
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for development",
		Args:  cobra.NoArgs,
		RunE:  runTokenCmd,
	}
	cmd.Flags().StringVar(&tokenSecret, "secret", os.Getenv("JWT_SECRET"), "HS256 secret shared with the backend")
	cmd.Flags().StringVar(&tokenName, "name", "", "display name")
	cmd.Flags().StringSliceVar(&tokenClasses, "class", nil, "class labels (repeatable)")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", auth.DefaultTTL, "token lifetime")
	return cmd
}

func runTokenCmd(_ *cobra.Command, _ []string) error {
	if tokenSecret == "" {
		return fmt.Errorf("--secret is required")
	}
	if account == "" {
		return fmt.Errorf("--account is required")
	}
	name := tokenName
	if name == "" {
		name = account
	}

	tok, err := auth.NewIssuer(tokenSecret, tokenTTL).Issue(account, name, tokenClasses)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	printf(os.Stdout, "%s\n", tok)
	return nil
}
