package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/catalog"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/metrics"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/server"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc,
	}
	fs := serveCmd.Flags()
	fs.String("server.address", ":8080", "listen address")
	fs.Duration("server.shutdown_timeout", 0, "graceful shutdown timeout")
	fs.Float64("ratelimit.rps", 2, "requests per second per client IP, 0 disables")
	fs.Int("ratelimit.burst", 4, "rate limiter burst")
	return serveCmd
}

func serveCmdFunc(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, cmd.Flags())
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Started serve cmd",
		zap.String("address", cfg.Server.Address),
		zap.String("catalog_url", cfg.Catalog.URL),
		zap.String("wishlist_store", cfg.Wishlist.Store),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wl, err := openWishlist(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer wl.Close()

	m := metrics.New("carfinder")
	loader := catalog.NewLoader(catalog.NewFetcher(cfg.Catalog.URL, cfg.Catalog.Timeout, log), log)
	loaded := loadInBackground(ctx, loader, wl, m)
	defer func() {
		stop()
		<-loaded
	}()

	serve := server.NewHTTPServer(server.Options{
		Addr:      cfg.Server.Address,
		PageSize:  cfg.Page.Size,
		RateLimit: rate.Limit(cfg.RateLimit.RPS),
		Burst:     cfg.RateLimit.Burst,
	}, loader, wl, m, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- serve.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Shutting down the server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutdown the server...")
	shutdownCtx := context.Background()
	if cfg.Server.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, cfg.Server.ShutdownTimeout)
		defer cancel()
	}
	return serve.Shutdown(shutdownCtx)
}

// loadInBackground fetches the catalog, refreshes the saved cars from it and
// publishes its size. The returned channel is closed when loading is over.
func loadInBackground(ctx context.Context, loader *catalog.Loader, wl *wishlist.Wishlist, m *metrics.Metrics) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		loader.Load(ctx)
		if cars, err := loader.Cars(); err == nil {
			wl.Resolve(cars)
			m.CatalogCars.Set(float64(len(cars)))
		}
	}()
	return done
}
