// Command token issues a bearer token for the search API, signed with the
// JWT_SECRET the server is configured with.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fuzumoe/linktorch-search/internal/service"
)

type tokenOpts struct {
	client string
	ttl    time.Duration
}

var errNoSecret = errors.New("JWT_SECRET is not set")

// newRootCmd builds the token command. It reads JWT_SECRET from the
// environment or a .env file when it runs.
func newRootCmd() *cobra.Command {
	opts := tokenOpts{}
	cmd := &cobra.Command{
		Use:           "token",
		Short:         "Issue a bearer token for the search API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return errNoSecret
			}
			if opts.ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", opts.ttl)
			}

			token, err := service.NewTokenService(secret, opts.ttl).Generate(opts.client)
			if err != nil {
				return fmt.Errorf("cannot sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.client, "client", "cli", "client name stored as the token subject")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
}
