// Package filter narrows, orders and pages the car catalog.
//
// Every function here is pure: inputs are never mutated and each call
// recomputes its result from scratch.
package filter

import (
	"strings"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// stage narrows a list of cars. A stage whose constraint is unset returns its
// input unchanged.
type stage func(cars []dal.Car) []dal.Car

// Apply returns the cars of catalog matching spec, in catalog order unless
// spec asks for a price sort. Constraints are combined with AND. The result
// never aliases catalog.
func Apply(catalog []dal.Car, spec dal.FilterSpec) []dal.Car {
	result := make([]dal.Car, len(catalog))
	copy(result, catalog)

	// order matters: sorting runs on the survivors only
	stages := []stage{
		filterSearch(spec.SearchQuery),
		filterBrand(spec.Brand),
		filterMinPrice(spec.MinPrice),
		filterMaxPrice(spec.MaxPrice),
		filterFuelType(spec.FuelType),
		filterSeating(spec.SeatingCapacity),
	}
	for _, s := range stages {
		result = s(result)
	}

	switch spec.SortBy {
	case dal.SortPriceLowHigh:
		result = MergeSort(result, false)
	case dal.SortPriceHighLow:
		result = MergeSort(result, true)
	}
	return result
}

func keep(cars []dal.Car, match func(dal.Car) bool) []dal.Car {
	matches := make([]dal.Car, 0, len(cars))
	for _, c := range cars {
		if match(c) {
			matches = append(matches, c)
		}
	}
	return matches
}

func filterSearch(query string) stage {
	return func(cars []dal.Car) []dal.Car {
		if query == "" {
			return cars
		}
		q := strings.ToLower(query)
		return keep(cars, func(c dal.Car) bool {
			return strings.Contains(strings.ToLower(c.Model), q) ||
				strings.Contains(strings.ToLower(c.Brand), q)
		})
	}
}

func filterBrand(brand string) stage {
	return func(cars []dal.Car) []dal.Car {
		if brand == "" {
			return cars
		}
		return keep(cars, func(c dal.Car) bool { return c.Brand == brand })
	}
}

func filterMinPrice(minPrice *float64) stage {
	return func(cars []dal.Car) []dal.Car {
		if minPrice == nil {
			return cars
		}
		return keep(cars, func(c dal.Car) bool { return c.Price >= *minPrice })
	}
}

func filterMaxPrice(maxPrice *float64) stage {
	return func(cars []dal.Car) []dal.Car {
		if maxPrice == nil {
			return cars
		}
		return keep(cars, func(c dal.Car) bool { return c.Price <= *maxPrice })
	}
}

func filterFuelType(fuel string) stage {
	return func(cars []dal.Car) []dal.Car {
		if fuel == "" {
			return cars
		}
		return keep(cars, func(c dal.Car) bool { return c.FuelType == fuel })
	}
}

// filterSeating matches the seat count exactly, not "at least".
func filterSeating(seats *int) stage {
	return func(cars []dal.Car) []dal.Car {
		if seats == nil {
			return cars
		}
		return keep(cars, func(c dal.Car) bool { return c.SeatingCapacity == *seats })
	}
}

// MergeSort sorts cars by price. Cars with equal prices keep their relative
// order.
func MergeSort(arrCar []dal.Car, descending bool) []dal.Car {
	if len(arrCar) <= 1 {
		return arrCar
	}

	middle := len(arrCar) / 2
	left := MergeSort(arrCar[:middle], descending)
	right := MergeSort(arrCar[middle:], descending)
	return merge(left, right, descending)
}

func merge(left, right []dal.Car, descending bool) []dal.Car {
	result := make([]dal.Car, 0, len(left)+len(right))
	for len(left) > 0 && len(right) > 0 {
		// take from the left on ties to stay stable
		takeRight := right[0].Price < left[0].Price
		if descending {
			takeRight = right[0].Price > left[0].Price
		}
		if takeRight {
			result = append(result, right[0])
			right = right[1:]
		} else {
			result = append(result, left[0])
			left = left[1:]
		}
	}
	result = append(result, left...)
	return append(result, right...)
}

// Brands lists the distinct brands of catalog in first-seen order.
func Brands(catalog []dal.Car) []string {
	seen := make(map[string]struct{})
	brands := []string{}
	for _, c := range catalog {
		if _, ok := seen[c.Brand]; !ok {
			seen[c.Brand] = struct{}{}
			brands = append(brands, c.Brand)
		}
	}
	return brands
}
