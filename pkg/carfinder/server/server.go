package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/catalog"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/metrics"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the HTTP server.
type Options struct {
	Addr     string
	PageSize int
	// RateLimit is the allowed requests per second per client IP; 0 disables it.
	RateLimit rate.Limit
	Burst     int
}

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(opts Options, loader *catalog.Loader, wl *wishlist.Wishlist, m *metrics.Metrics, log *zap.Logger) *http.Server {
	server := newHTTPServer(opts, loader, wl, m, log)
	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: otelhttp.NewHandler(server.routes(), "carfinder"),
	}
	srv.RegisterOnShutdown(server.close)
	return srv
}

type httpServer struct {
	log      *zap.Logger
	loader   *catalog.Loader
	wishlist *wishlist.Wishlist
	metrics  *metrics.Metrics
	opts     Options

	done      chan struct{}
	closeOnce sync.Once
}

func newHTTPServer(opts Options, loader *catalog.Loader, wl *wishlist.Wishlist, m *metrics.Metrics, log *zap.Logger) *httpServer {
	return &httpServer{
		log:      log,
		loader:   loader,
		wishlist: wl,
		metrics:  m,
		opts:     opts,
		done:     make(chan struct{}),
	}
}

// close stops the background work started by routes.
func (h *httpServer) close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *httpServer) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(h.recoverPanic, h.requestID, h.logRequests)
	if h.opts.RateLimit > 0 {
		r.Use(h.rateLimit)
	}

	r.HandleFunc("/cars", h.GetCars).Methods(http.MethodGet)
	r.HandleFunc("/brands", h.GetBrands).Methods(http.MethodGet)
	r.HandleFunc("/options", h.GetOptions).Methods(http.MethodGet)
	r.HandleFunc("/wishlist", h.GetWishlist).Methods(http.MethodGet)
	r.HandleFunc("/wishlist/{id}", h.ToggleWishlist).Methods(http.MethodPost)
	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	return r
}
