package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStore struct{ mock.Mock }

func (m *MockStore) Load(ctx context.Context) ([]dal.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dal.Car), args.Error(1)
}
func (m *MockStore) Save(ctx context.Context, cars []dal.Car) error {
	args := m.Called(ctx, cars)
	return args.Error(0)
}
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

var (
	corolla = dal.Car{ID: "1", Brand: "Toyota", Model: "Corolla", Price: 18000, FuelType: "Petrol", SeatingCapacity: 5}
	model3  = dal.Car{ID: "2", Brand: "Tesla", Model: "Model 3", Price: 40000, FuelType: "Electric", SeatingCapacity: 5}
)

func TestToggleTwiceRestoresMembership(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Load", ctx).Return(nil, nil)
	store.On("Save", ctx, mock.Anything).Return(nil)

	w, err := Open(ctx, store, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, w.Contains(corolla.ID))

	saved, err := w.Toggle(ctx, corolla)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, w.Contains(corolla.ID))

	saved, err = w.Toggle(ctx, corolla)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, w.Contains(corolla.ID))
	assert.Equal(t, 0, w.Len())

	store.AssertNumberOfCalls(t, "Save", 2)
	store.AssertCalled(t, "Save", ctx, []dal.Car{corolla})
	store.AssertCalled(t, "Save", ctx, []dal.Car{})
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Load", ctx).Return([]dal.Car{corolla}, nil)
	store.On("Save", ctx, mock.Anything).Return(nil)

	w, err := Open(ctx, store, zap.NewNop())
	require.NoError(t, err)

	_, err = w.Toggle(ctx, model3)
	require.NoError(t, err)
	assert.Equal(t, []dal.Car{corolla, model3}, w.Items())
}

func TestToggleReportsSaveFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Load", ctx).Return(nil, nil)
	store.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	w, err := Open(ctx, store, zap.NewNop())
	require.NoError(t, err)

	saved, err := w.Toggle(ctx, corolla)
	assert.Error(t, err)
	assert.True(t, saved)
	assert.True(t, w.Contains(corolla.ID))
}

func TestOpenFailsWhenLoadFails(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Load", ctx).Return(nil, errors.New("boom"))

	_, err := Open(ctx, store, zap.NewNop())
	assert.Error(t, err)
}

func TestResolveRefreshesFromCatalog(t *testing.T) {
	ctx := context.Background()
	gone := dal.Car{ID: "99", Brand: "Saab", Model: "900"}
	store := new(MockStore)
	store.On("Load", ctx).Return([]dal.Car{corolla, gone}, nil)

	w, err := Open(ctx, store, zap.NewNop())
	require.NoError(t, err)

	repriced := corolla
	repriced.Price = 17500
	w.Resolve([]dal.Car{model3, repriced})

	assert.Equal(t, []dal.Car{repriced, gone}, w.Items())
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStoresRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	stores := map[string]func(t *testing.T) Store{
		StoreFile: func(t *testing.T) Store {
			s, err := NewStore(ctx, StoreConfig{Kind: StoreFile, Path: t.TempDir()})
			require.NoError(t, err)
			return s
		},
		StoreSQLite: func(t *testing.T) Store {
			s, err := NewStore(ctx, StoreConfig{Kind: StoreSQLite, DSN: ":memory:"})
			require.NoError(t, err)
			return s
		},
		StoreRedis: func(t *testing.T) Store {
			s, err := NewStore(ctx, StoreConfig{Kind: StoreRedis, Redis: redis.Options{Addr: mr.Addr()}})
			require.NoError(t, err)
			return s
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			cars, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, cars)

			require.NoError(t, s.Save(ctx, []dal.Car{corolla, model3}))
			cars, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []dal.Car{corolla, model3}, cars)

			require.NoError(t, s.Save(ctx, []dal.Car{model3}))
			cars, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []dal.Car{model3}, cars)
		})
	}
}

func TestRedisStoreWritesJSONArrayUnderKey(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(ctx, &redis.Options{Addr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, []dal.Car{corolla}))
	raw, err := mr.Get(Key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"brand":"Toyota","model":"Corolla","price":18000,"year":0,"fuelType":"Petrol","seatingCapacity":5,"mileage":0}]`, raw)
}

func TestNewStoreRejectsUnknownKind(t *testing.T) {
	_, err := NewStore(context.Background(), StoreConfig{Kind: "mongo"})
	assert.Error(t, err)
}
