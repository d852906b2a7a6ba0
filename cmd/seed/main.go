// cmd/seed manages the fallback store's lifecycle.
// Usage: go run ./cmd/seed [init|reset|teardown|status]
package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"autoparts/internal/config"
	"autoparts/internal/infra"
	"autoparts/internal/repository"
	"autoparts/internal/seed"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var prefix string

	// open connects to Redis using the service configuration.
	open := func(ctx context.Context) (*repository.LocalStore, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		if prefix == "" {
			prefix = cfg.FallbackKeyPrefix
		}
		rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewLocalStore(rdb, prefix), func() { _ = rdb.Close() }, nil
	}
	generate := func() seed.Dataset { return seed.Generate(seed.NewRand(), time.Now()) }

	root := &cobra.Command{
		Use:          "seed",
		Short:        "Manage the sample data held in the fallback store",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&prefix, "prefix", "", "key prefix (defaults to FALLBACK_KEY_PREFIX)")

	root.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Seed the store unless it is already initialized",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, closeFn, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				seeded, err := store.Init(cmd.Context(), generate)
				if err != nil {
					return err
				}
				if !seeded {
					fmt.Fprintln(cmd.OutOrStdout(), "already initialized, nothing to do")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "seeded")
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Drop every collection and seed fresh sample data",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, closeFn, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				if err := store.Reset(cmd.Context(), generate); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "reset")
				return nil
			},
		},
		&cobra.Command{
			Use:   "teardown",
			Short: "Drop every collection and the initialized flag",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, closeFn, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				if err := store.Teardown(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "torn down")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether the store is initialized and its collection sizes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, closeFn, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				ok, err := store.Initialized(cmd.Context())
				if err != nil {
					return err
				}
				counts, err := store.Counts(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "initialized: %t\n", ok)
				names := make([]string, 0, len(counts))
				for name := range counts {
					names = append(names, name)
				}
				slices.Sort(names)
				for _, name := range names {
					fmt.Fprintf(out, "%-18s %d\n", name, counts[name])
				}
				return nil
			},
		},
	)
	return root
}
