package filter

import "github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"

// Paginate returns page pageNumber (1-based) of filtered. Pages past the end,
// page numbers below 1 and non-positive sizes yield an empty slice.
func Paginate(filtered []dal.Car, pageSize, pageNumber int) []dal.Car {
	if pageSize < 1 || pageNumber < 1 {
		return []dal.Car{}
	}
	// Bound the page number before multiplying so huge pages cannot overflow.
	if pageNumber > TotalPages(len(filtered), pageSize) {
		return []dal.Car{}
	}
	start := (pageNumber - 1) * pageSize
	end := len(filtered)
	if pageSize < end-start {
		end = start + pageSize
	}
	page := make([]dal.Car, end-start)
	copy(page, filtered[start:end])
	return page
}

// TotalPages is ceil(count/pageSize); an empty result has 0 pages.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize < 1 {
		return 0
	}
	return (count-1)/pageSize + 1
}
