package dal

import "errors"

var (
	ErrCatalogLoading     = errors.New("loading cars")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCarNotFound        = errors.New("car not found")
	ErrInvalidFilter      = errors.New("invalid filter parameters")
)
