package dal

import (
	"fmt"
	"math"
	"strconv"
)

// SortBy selects the ordering of search results.
type SortBy string

const (
	SortNone         SortBy = ""
	SortPriceLowHigh SortBy = "price-low-high"
	SortPriceHighLow SortBy = "price-high-low"
)

const (
	DefaultPageSize = 10
	FirstPage       = 1
)

// ParseSortBy validates a sort mode coming from a query string or flag.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case SortNone, SortPriceLowHigh, SortPriceHighLow:
		return SortBy(s), nil
	}
	return SortNone, fmt.Errorf("%w: unknown sort %q", ErrInvalidFilter, s)
}

// FilterSpec holds the user chosen constraints. Empty strings and nil
// pointers mean "no constraint".
type FilterSpec struct {
	SearchQuery     string   `json:"searchQuery,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	MinPrice        *float64 `json:"minPrice,omitempty"`
	MaxPrice        *float64 `json:"maxPrice,omitempty"`
	FuelType        string   `json:"fuelType,omitempty"`
	SeatingCapacity *int     `json:"seatingCapacity,omitempty"`
	SortBy          SortBy   `json:"sortBy,omitempty"`
}

// IsZero reports whether f has no constraint and no sort.
func (f FilterSpec) IsZero() bool {
	return f.SearchQuery == "" && f.Brand == "" && f.MinPrice == nil &&
		f.MaxPrice == nil && f.FuelType == "" && f.SeatingCapacity == nil &&
		f.SortBy == SortNone
}

// Filter field names, as used by the search form and the browse commands.
const (
	FieldSearchQuery     = "searchQuery"
	FieldBrand           = "brand"
	FieldMinPrice        = "minPrice"
	FieldMaxPrice        = "maxPrice"
	FieldFuelType        = "fuelType"
	FieldSeatingCapacity = "seatingCapacity"
	FieldSortBy          = "sortBy"
)

// Set updates one field from its text form. An empty value clears the field.
func (f *FilterSpec) Set(name, value string) error {
	var err error
	switch name {
	case FieldSearchQuery:
		f.SearchQuery = value
	case FieldBrand:
		f.Brand = value
	case FieldMinPrice:
		f.MinPrice, err = ParsePrice(value)
	case FieldMaxPrice:
		f.MaxPrice, err = ParsePrice(value)
	case FieldFuelType:
		f.FuelType = value
	case FieldSeatingCapacity:
		f.SeatingCapacity, err = ParseSeats(value)
	case FieldSortBy:
		f.SortBy, err = ParseSortBy(value)
	default:
		err = fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, name)
	}
	return err
}

// ParsePrice parses an optional non-negative price. "" yields nil.
func ParsePrice(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("%w: price must be a number: %q", ErrInvalidFilter, s)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must be a positive number: %v", ErrInvalidFilter, price)
	}
	return &price, nil
}

// ParseSeats parses an optional positive seat count. "" yields nil.
func ParseSeats(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	seats, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: seating capacity must be an integer: %q", ErrInvalidFilter, s)
	}
	if seats <= 0 {
		return nil, fmt.Errorf("%w: seating capacity must be a positive number: %d", ErrInvalidFilter, seats)
	}
	return &seats, nil
}

// PageSpec selects one page of a result list. Number is 1-based.
type PageSpec struct {
	Size   int
	Number int
}

// DefaultPage returns the first page with the default size.
func DefaultPage() PageSpec {
	return PageSpec{Size: DefaultPageSize, Number: FirstPage}
}
