package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rag-backend/internal/bootstrap"
)

var envFile string

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rag-backend",
		Short:        "Lookup API for team, investment, sector and consultation data",
		SilenceUsage: true,
		// 不带子命令时等同于 serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to an env file (defaults to ./.env when present)")

	rootCmd.AddCommand(newServeCmd(), newSeedCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Seed empty collections, then start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), envFile)
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed empty collections and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Seed(cmd.Context(), envFile)
		},
	}
}
