// Package session owns the state of one browsing session: the catalog, the
// active filters, the current page and the wishlist. Views are recomputed
// from scratch on every call.
package session

import (
	"context"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/catalog"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/filter"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
)

// Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	loader   *catalog.Loader
	wishlist *wishlist.Wishlist
	filters  dal.FilterSpec
	page     dal.PageSpec
}

// View is the read-only model rendered by front ends.
type View struct {
	State      catalog.State
	Err        string
	Filters    dal.FilterSpec
	Brands     []string
	Cars       []dal.Car
	Page       int
	PageSize   int
	TotalPages int
	TotalCars  int
	Saved      map[dal.CarID]bool
	Wishlist   []dal.Car
}

func New(loader *catalog.Loader, wl *wishlist.Wishlist, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = dal.DefaultPageSize
	}
	return &Session{
		loader:   loader,
		wishlist: wl,
		page:     dal.PageSpec{Size: pageSize, Number: dal.FirstPage},
	}
}

// Load fetches the catalog once and refreshes saved cars from it.
func (s *Session) Load(ctx context.Context) {
	s.loader.Load(ctx)
	if cars, err := s.loader.Cars(); err == nil {
		s.wishlist.Resolve(cars)
	}
}

// Filters returns the active filters.
func (s *Session) Filters() dal.FilterSpec {
	return s.filters
}

// SetFilter changes one filter field and goes back to the first page.
// On a parse error nothing changes.
func (s *Session) SetFilter(name, value string) error {
	next := s.filters
	if err := next.Set(name, value); err != nil {
		return err
	}
	s.SetFilters(next)
	return nil
}

// SetFilters replaces all filters and goes back to the first page.
func (s *Session) SetFilters(spec dal.FilterSpec) {
	s.filters = spec
	s.page.Number = dal.FirstPage
}

// Page is the current 1-based page number.
func (s *Session) Page() int {
	return s.page.Number
}

// SetPage jumps to page n. Pages outside the result render empty.
func (s *Session) SetPage(n int) {
	s.page.Number = n
}

// NextPage moves forward unless already on the last page.
func (s *Session) NextPage() {
	if s.page.Number < s.View().TotalPages {
		s.page.Number++
	}
}

// PrevPage moves back unless already on the first page.
func (s *Session) PrevPage() {
	if s.page.Number > dal.FirstPage {
		s.page.Number--
	}
}

// ToggleWishlist saves or removes the catalog car with id.
func (s *Session) ToggleWishlist(ctx context.Context, id dal.CarID) (bool, error) {
	cars, err := s.loader.Cars()
	if err != nil {
		return false, err
	}
	car, ok := Find(cars, id)
	if !ok {
		return false, dal.ErrCarNotFound
	}
	return s.wishlist.Toggle(ctx, car)
}

// View filters, sorts and pages the catalog for the current state.
func (s *Session) View() View {
	snap := s.loader.Snapshot()
	v := View{
		State:    snap.State,
		Err:      snap.Err,
		Filters:  s.filters,
		Page:     s.page.Number,
		PageSize: s.page.Size,
		Brands:   filter.Brands(snap.Cars),
		Cars:     []dal.Car{},
		Saved:    map[dal.CarID]bool{},
		Wishlist: s.wishlist.Items(),
	}
	for _, c := range v.Wishlist {
		v.Saved[c.ID] = true
	}
	if snap.State != catalog.Ready {
		return v
	}

	filtered := filter.Apply(snap.Cars, s.filters)
	v.TotalCars = len(filtered)
	v.TotalPages = filter.TotalPages(len(filtered), s.page.Size)
	v.Cars = filter.Paginate(filtered, s.page.Size, s.page.Number)
	return v
}

// Find looks up a car by id.
func Find(cars []dal.Car, id dal.CarID) (dal.Car, bool) {
	for _, c := range cars {
		if c.ID == id {
			return c, true
		}
	}
	return dal.Car{}, false
}
