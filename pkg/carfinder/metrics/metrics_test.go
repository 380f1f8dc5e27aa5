package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposed(t *testing.T) {
	m := New("carfinder")
	m.WishlistToggles.WithLabelValues("saved").Inc()
	m.CatalogCars.Set(25)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WishlistToggles.WithLabelValues("saved")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "carfinder_catalog_cars 25")
	assert.Contains(t, string(body), `carfinder_wishlist_toggles_total{action="saved"} 1`)
}
