package dal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarIDDecodesNumbersAndStrings(t *testing.T) {
	var cars []Car
	err := json.Unmarshal([]byte(`[{"id":7,"brand":"Toyota"},{"id":"b-12","brand":"BMW"}]`), &cars)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, CarID("7"), cars[0].ID)
	assert.Equal(t, CarID("b-12"), cars[1].ID)

	out, err := json.Marshal(cars[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "7", string(out))

	out, err = json.Marshal(cars[1].ID)
	require.NoError(t, err)
	assert.Equal(t, `"b-12"`, string(out))
}

func TestCarIDRejectsObjects(t *testing.T) {
	var c Car
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &c))
}

func TestImageURLFallsBackToPlaceholder(t *testing.T) {
	assert.Equal(t, PlaceholderImage, Car{}.ImageURL())
	assert.Equal(t, "http://img/1.png", Car{Image: "http://img/1.png"}.ImageURL())
}

func TestParseSortBy(t *testing.T) {
	for _, s := range []string{"", "price-low-high", "price-high-low"} {
		got, err := ParseSortBy(s)
		require.NoError(t, err)
		assert.Equal(t, SortBy(s), got)
	}
	_, err := ParseSortBy("year")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilterSpecIsZero(t *testing.T) {
	assert.True(t, FilterSpec{}.IsZero())
	seats := 4
	assert.False(t, FilterSpec{SeatingCapacity: &seats}.IsZero())
	assert.False(t, FilterSpec{SortBy: SortPriceHighLow}.IsZero())
}

func TestFilterSpecSet(t *testing.T) {
	var f FilterSpec
	require.NoError(t, f.Set(FieldSearchQuery, "yot"))
	require.NoError(t, f.Set(FieldBrand, "Toyota"))
	require.NoError(t, f.Set(FieldMinPrice, "1000.5"))
	require.NoError(t, f.Set(FieldMaxPrice, "0"))
	require.NoError(t, f.Set(FieldFuelType, "Hybrid"))
	require.NoError(t, f.Set(FieldSeatingCapacity, "7"))
	require.NoError(t, f.Set(FieldSortBy, "price-high-low"))

	assert.Equal(t, "yot", f.SearchQuery)
	assert.Equal(t, "Toyota", f.Brand)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 1000.5, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 0.0, *f.MaxPrice)
	assert.Equal(t, "Hybrid", f.FuelType)
	require.NotNil(t, f.SeatingCapacity)
	assert.Equal(t, 7, *f.SeatingCapacity)
	assert.Equal(t, SortPriceHighLow, f.SortBy)

	require.NoError(t, f.Set(FieldMinPrice, ""))
	assert.Nil(t, f.MinPrice)
	require.NoError(t, f.Set(FieldSeatingCapacity, ""))
	assert.Nil(t, f.SeatingCapacity)
}

func TestFilterSpecSetRejectsBadValues(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{FieldMinPrice, "cheap"},
		{FieldMaxPrice, "-1"},
		{FieldMaxPrice, "NaN"},
		{FieldSeatingCapacity, "4.5"},
		{FieldSeatingCapacity, "0"},
		{FieldSortBy, "year"},
		{"color", "red"},
	}
	for _, tc := range tests {
		t.Run(tc.field+"="+tc.value, func(t *testing.T) {
			var f FilterSpec
			assert.ErrorIs(t, f.Set(tc.field, tc.value), ErrInvalidFilter)
		})
	}
}
