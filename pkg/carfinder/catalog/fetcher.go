// Package catalog fetches the car catalog and tracks its load state.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// DefaultURL serves the demo catalog.
const DefaultURL = "https://my-json-server.typicode.com/swaroopa2344/cars/cars"

// Fetcher downloads the whole catalog with a single GET.
type Fetcher struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewFetcher returns a Fetcher for url. A zero timeout means none.
func NewFetcher(url string, timeout time.Duration, log *zap.Logger) *Fetcher {
	return &Fetcher{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// Fetch returns the catalog records in the order the source lists them.
func (f *Fetcher) Fetch(ctx context.Context) ([]dal.Car, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	var cars []dal.Car
	if err := json.NewDecoder(resp.Body).Decode(&cars); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if cars == nil {
		cars = []dal.Car{}
	}

	f.log.Info("catalog fetched",
		zap.String("url", f.url),
		zap.Int("cars", len(cars)),
		zap.Duration("took", time.Since(start)),
	)
	return cars, nil
}
