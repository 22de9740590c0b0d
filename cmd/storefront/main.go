// Command storefront serves the storefront API and drives the same state
// from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/logging"
	"github.com/01moynul/storefront-golang/internal/storage"
	"github.com/01moynul/storefront-golang/internal/storefront"
)

var (
	// configPath is the --config flag.
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Online storefront: catalog browsing, cart and mock accounts",
	Long: `storefront serves a JSON API over a product catalog service, with a
persisted shopping cart, registered users and product comments.

Every subcommand other than serve operates directly on the configured
store, so the CLI and a running server share the same cart and session.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (or set STOREFRONT_CONFIG)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(productsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set; using the built-in development secret")
	}
	return nil
}

// openApp builds the storefront over the configured store. The returned
// func closes the store.
func openApp(ctx context.Context) (*storefront.App, func(), error) {
	kv, err := storage.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.CatalogTimeout())
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.TokenTTL())
	app := storefront.New(ctx, kv, client, tokens, storefront.Options{
		BrowseLimit:     cfg.Catalog.BrowseLimit,
		DefaultShipping: cfg.Catalog.DefaultShip,
		BcryptCost:      cfg.Auth.BcryptCost,
	}, logger)

	closeFn := func() {
		if err := kv.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}
	return app, closeFn, nil
}

// withApp runs fn against a freshly opened storefront.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *storefront.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, closeFn, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, app)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
