package wishlist

import (
	"encoding/json"
	"fmt"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

func encode(cars []dal.Car) ([]byte, error) {
	if cars == nil {
		cars = []dal.Car{}
	}
	return json.Marshal(cars)
}

func decode(data []byte) ([]dal.Car, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var cars []dal.Car
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("decode %s: %w", Key, err)
	}
	return cars, nil
}
