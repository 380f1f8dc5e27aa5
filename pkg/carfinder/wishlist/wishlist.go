// Package wishlist keeps the user's saved cars and persists them in a
// single key-value slot.
package wishlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"go.uber.org/zap"
)

// Key is the name of the durable slot holding the wishlist.
const Key = "carWishlist"

// Store reads and overwrites the JSON encoded wishlist slot.
// Load returns a nil slice and no error when the slot is empty.
type Store interface {
	Load(ctx context.Context) ([]dal.Car, error)
	Save(ctx context.Context, cars []dal.Car) error
	Close() error
}

// Wishlist is an ordered set of cars keyed by id.
type Wishlist struct {
	mu    sync.RWMutex
	cars  []dal.Car
	store Store
	log   *zap.Logger
}

// Open reads the slot once and returns the wishlist it holds.
func Open(ctx context.Context, store Store, log *zap.Logger) (*Wishlist, error) {
	cars, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	log.Debug("wishlist loaded", zap.Int("cars", len(cars)))
	return &Wishlist{cars: cars, store: store, log: log}, nil
}

// Toggle adds car when absent and removes it when present, then writes the
// slot. It returns whether car is in the wishlist afterwards. The in-memory
// change is kept even if the write fails.
func (w *Wishlist) Toggle(ctx context.Context, car dal.Car) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	updated := make([]dal.Car, 0, len(w.cars)+1)
	removed := false
	for _, c := range w.cars {
		if c.ID == car.ID {
			removed = true
			continue
		}
		updated = append(updated, c)
	}
	if !removed {
		updated = append(updated, car)
	}
	w.cars = updated

	if err := w.store.Save(ctx, updated); err != nil {
		w.log.Error("failed to save wishlist", zap.String("car_id", string(car.ID)), zap.Error(err))
		return !removed, fmt.Errorf("save wishlist: %w", err)
	}
	w.log.Info("wishlist toggled", zap.String("car_id", string(car.ID)), zap.Bool("saved", !removed))
	return !removed, nil
}

// Contains reports whether a car with id is saved.
func (w *Wishlist) Contains(id dal.CarID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, c := range w.cars {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Items returns the saved cars in the order they were added.
func (w *Wishlist) Items() []dal.Car {
	w.mu.RLock()
	defer w.mu.RUnlock()
	items := make([]dal.Car, len(w.cars))
	copy(items, w.cars)
	return items
}

// Len is the number of saved cars.
func (w *Wishlist) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.cars)
}

// Resolve refreshes saved records from the live catalog. Cars that are no
// longer in the catalog keep their stored copy. Nothing is written back.
func (w *Wishlist) Resolve(catalog []dal.Car) {
	byID := make(map[dal.CarID]dal.Car, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for i, c := range w.cars {
		if live, ok := byID[c.ID]; ok {
			w.cars[i] = live
		}
	}
}

// Close releases the underlying store.
func (w *Wishlist) Close() error {
	return w.store.Close()
}
