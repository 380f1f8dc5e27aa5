package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/catalog"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/config"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/logger"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           RootCmdName,
		Short:         RootCmdShort,
		Long:          RootCmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := root.PersistentFlags()
	fs.String("config", "", "config file (default ./config.yaml when present)")
	fs.String("catalog.url", catalog.DefaultURL, "catalog JSON endpoint")
	fs.Duration("catalog.timeout", 0, "catalog fetch timeout, 0 for none")
	fs.Int("page.size", dal.DefaultPageSize, "cars per page")
	fs.String("wishlist.store", wishlist.StoreFile, "wishlist store: file, sqlite or redis")
	fs.String("wishlist.path", ".carfinder", "directory of the file store")
	fs.String("wishlist.dsn", "carfinder.db", "sqlite data source")
	fs.String("redis.address", "localhost:6379", "redis address")
	fs.String("log.level", "info", "log level")
	fs.String("log.format", "json", "log format: json or console")

	root.AddCommand(newServeCmd(), newSearchCmd(), newWishlistCmd(), newBrowseCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

// setup loads the configuration with flags taking precedence and builds the
// logger.
func setup(cmd *cobra.Command, flags *pflag.FlagSet) (*config.Config, *zap.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path, flags)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func openWishlist(ctx context.Context, cfg *config.Config, log *zap.Logger) (*wishlist.Wishlist, error) {
	store, err := wishlist.NewStore(ctx, cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("open wishlist store: %w", err)
	}
	wl, err := wishlist.Open(ctx, store, log)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wl, nil
}

// loadCatalog fetches the catalog synchronously for the one-shot commands.
func loadCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*catalog.Loader, error) {
	loader := catalog.NewLoader(catalog.NewFetcher(cfg.Catalog.URL, cfg.Catalog.Timeout, log), log)
	loader.Load(ctx)
	if _, err := loader.Cars(); err != nil {
		return nil, err
	}
	return loader, nil
}
