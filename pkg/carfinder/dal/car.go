package dal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PlaceholderImage is shown for cars without an image.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Car+Image"

// CarID identifies a car in the catalog. The upstream catalog serves ids as
// JSON numbers, other sources use strings; both decode into a CarID.
type CarID string

// UnmarshalJSON accepts a JSON number or string.
func (id *CarID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CarID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("car id must be a number or string: %w", err)
	}
	*id = CarID(n.String())
	return nil
}

// MarshalJSON writes integer ids back as numbers so stored records keep the
// upstream shape.
func (id CarID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Car defines a car record of the catalog
type Car struct {
	ID              CarID   `json:"id"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Price           float64 `json:"price"`
	Year            int     `json:"year"`
	FuelType        string  `json:"fuelType"`
	SeatingCapacity int     `json:"seatingCapacity"`
	Mileage         float64 `json:"mileage"`
	Image           string  `json:"image,omitempty"`
}

// ImageURL returns the car image or the placeholder when it has none.
func (c Car) ImageURL() string {
	if c.Image == "" {
		return PlaceholderImage
	}
	return c.Image
}

// Title is the display name of the car, e.g. "Toyota Corolla".
func (c Car) Title() string {
	return c.Brand + " " + c.Model
}

// CarResponse defines an HTTP response struct for one page of search results
type CarResponse struct {
	Cars       []Car   `json:"cars"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
	TotalCars  int     `json:"totalCars"`
	Wishlisted []CarID `json:"wishlisted"`
}

// FuelTypes are the fuel types offered by the search form. Filtering accepts
// any value.
var FuelTypes = []string{"Petrol", "Diesel", "Electric", "Hybrid"}

// SeatingOptions are the seat counts offered by the search form.
var SeatingOptions = []int{2, 4, 5, 7, 8}
