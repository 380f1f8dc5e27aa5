package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/filter"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/session"
	"go.uber.org/zap"
)

const maxPageSize = 100

// GetCars defines a GET handler returning one page of the filtered catalog
func (h *httpServer) GetCars(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()

	spec, err := validateFilters(vars)
	if err != nil {
		h.log.Debug("filter validation failed", zap.Error(err))
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := validatePage(vars, h.opts.PageSize)
	if err != nil {
		h.log.Debug("page validation failed", zap.Error(err))
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	cars, err := h.loader.Cars()
	if err != nil {
		h.catalogErrorResponse(w, err)
		return
	}

	filtered := filter.Apply(cars, spec)
	h.metrics.SearchResults.Observe(float64(len(filtered)))

	resp := dal.CarResponse{
		Cars:       filter.Paginate(filtered, page.Size, page.Number),
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: filter.TotalPages(len(filtered), page.Size),
		TotalCars:  len(filtered),
		Wishlisted: []dal.CarID{},
	}
	for _, c := range resp.Cars {
		if h.wishlist.Contains(c.ID) {
			resp.Wishlisted = append(resp.Wishlisted, c.ID)
		}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// GetBrands lists the distinct catalog brands for the brand selector
func (h *httpServer) GetBrands(w http.ResponseWriter, r *http.Request) {
	cars, err := h.loader.Cars()
	if err != nil {
		h.catalogErrorResponse(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{"brands": filter.Brands(cars)})
}

// GetOptions returns the choices offered by the search form
func (h *httpServer) GetOptions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, envelope{
		"fuelTypes":      dal.FuelTypes,
		"seatingOptions": dal.SeatingOptions,
		"sortBy":         []dal.SortBy{dal.SortNone, dal.SortPriceLowHigh, dal.SortPriceHighLow},
		"pageSize":       h.opts.PageSize,
	})
}

// GetWishlist returns the saved cars. It works while the catalog is down.
func (h *httpServer) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items := h.wishlist.Items()
	h.writeJSON(w, http.StatusOK, envelope{"cars": items, "count": len(items)})
}

// ToggleWishlist saves or removes the catalog car named in the path
func (h *httpServer) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id := dal.CarID(mux.Vars(r)["id"])

	cars, err := h.loader.Cars()
	if err != nil {
		h.catalogErrorResponse(w, err)
		return
	}
	car, ok := session.Find(cars, id)
	if !ok {
		h.errorResponse(w, http.StatusNotFound, fmt.Sprintf("%v: %s", dal.ErrCarNotFound, id))
		return
	}

	saved, err := h.wishlist.Toggle(r.Context(), car)
	if err != nil {
		h.serverErrorResponse(w, err)
		return
	}
	action := "removed"
	if saved {
		action = "saved"
	}
	h.metrics.WishlistToggles.WithLabelValues(action).Inc()
	h.writeJSON(w, http.StatusOK, envelope{"id": id, "saved": saved, "count": h.wishlist.Len()})
}

// Healthz reports liveness and the catalog state
func (h *httpServer) Healthz(w http.ResponseWriter, r *http.Request) {
	snap := h.loader.Snapshot()
	body := envelope{"status": "ok", "catalog": snap.State.String()}
	if snap.Err != "" {
		body["error"] = snap.Err
	}
	h.writeJSON(w, http.StatusOK, body)
}

func validateFilters(vars url.Values) (dal.FilterSpec, error) {
	var spec dal.FilterSpec
	fields := []struct {
		param string
		field string
	}{
		{"search", dal.FieldSearchQuery},
		{"brand", dal.FieldBrand},
		{"minPrice", dal.FieldMinPrice},
		{"maxPrice", dal.FieldMaxPrice},
		{"fuelType", dal.FieldFuelType},
		{"seatingCapacity", dal.FieldSeatingCapacity},
		{"sortBy", dal.FieldSortBy},
	}
	for _, f := range fields {
		if err := spec.Set(f.field, vars.Get(f.param)); err != nil {
			return dal.FilterSpec{}, err
		}
	}
	return spec, nil
}

func validatePage(vars url.Values, defaultSize int) (dal.PageSpec, error) {
	page := dal.PageSpec{Size: defaultSize, Number: dal.FirstPage}

	if s := vars.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return page, fmt.Errorf("page must be an integer: %q", s)
		}
		page.Number = n
	}

	if s := vars.Get("pageSize"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return page, fmt.Errorf("pageSize must be an integer: %q", s)
		}
		if n < 1 || n > maxPageSize {
			return page, fmt.Errorf("pageSize must be between 1 and %d: %d", maxPageSize, n)
		}
		page.Size = n
	}
	return page, nil
}
