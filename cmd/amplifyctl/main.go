// Command amplifyctl manages the influencer roster, campaigns and signup
// inbox directly against the configured store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"amplify/internal/campaign"
	"amplify/internal/config"
	"amplify/internal/intake"
	"amplify/internal/notify"
	"amplify/internal/repository"
	"amplify/internal/seed"
	"amplify/internal/store"
)

var (
	storeDriver string
	storePath   string
	noSeed      bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "amplifyctl",
	Short: "Manage the influencer roster from the command line",
	Long: `amplifyctl reads and writes the same collections as the server.

Store selection follows the server environment (STORE_DRIVER, STORE_PATH,
DATABASE_URL, REDIS_URL) unless overridden by flags.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "Store driver: bolt, sqlite, postgres, redis or memory (default: $STORE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&storePath, "path", "", "Bolt or SQLite file (default: $STORE_PATH)")
	rootCmd.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "Start from an empty roster when the store holds none")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log notifications to stderr")

	rootCmd.AddCommand(influencersCmd)
	rootCmd.AddCommand(campaignsCmd)
	rootCmd.AddCommand(submissionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is one open store with its collections and services.
type session struct {
	store     store.Store
	repos     *repository.Set
	campaigns *campaign.Service
	intake    *intake.Service
	notifier  *notify.Notifier
}

func openSession(ctx context.Context) (*session, error) {
	cfg := config.Load()
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	opts := store.Options{
		Driver:      cfg.StoreDriver,
		Path:        cfg.StorePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	}
	if storeDriver != "" {
		opts.Driver = storeDriver
	}
	if storePath != "" {
		opts.Path = storePath
	}

	st, err := store.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", opts.Driver, err)
	}

	roster, err := seed.Starter(noSeed || cfg.SeedDisabled, yamlCfg.SeedFile())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load starter roster: %w", err)
	}

	repos, err := repository.Open(ctx, st, roster)
	if err != nil {
		st.Close()
		return nil, err
	}

	var notifier *notify.Notifier
	if verbose {
		notifier = notify.New(notify.LogSink{Logger: slog.New(slog.NewTextHandler(os.Stderr, nil))})
	}

	return &session{
		store:     st,
		repos:     repos,
		campaigns: campaign.NewService(repos.Campaigns, repos.Influencers),
		intake:    intake.NewService(repos, notifier),
		notifier:  notifier,
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// withSession runs fn against a freshly opened session.
func withSession(cmd *cobra.Command, fn func(context.Context, *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(ctx, s)
}
