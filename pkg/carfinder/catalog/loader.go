package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"go.uber.org/zap"
)

// State of the session catalog.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Source produces the full catalog.
type Source interface {
	Fetch(ctx context.Context) ([]dal.Car, error)
}

// Snapshot is a read-only view of the loader.
type Snapshot struct {
	State State
	Cars  []dal.Car
	Err   string
}

// Error maps the snapshot to dal.ErrCatalogLoading, a wrapped
// dal.ErrCatalogUnavailable, or nil when the catalog is ready.
func (s Snapshot) Error() error {
	switch s.State {
	case Loading:
		return dal.ErrCatalogLoading
	case Failed:
		return fmt.Errorf("%w: %s", dal.ErrCatalogUnavailable, s.Err)
	}
	return nil
}

// Loader fetches the catalog once per session. A failed load is final.
type Loader struct {
	source Source
	log    *zap.Logger

	once sync.Once
	mu   sync.RWMutex
	snap Snapshot
}

func NewLoader(source Source, log *zap.Logger) *Loader {
	return &Loader{source: source, log: log, snap: Snapshot{State: Loading}}
}

// Load runs the fetch on the first call; later calls return at once.
func (l *Loader) Load(ctx context.Context) {
	l.once.Do(func() {
		cars, err := l.source.Fetch(ctx)

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.log.Error("failed to fetch catalog", zap.Error(err))
			l.snap = Snapshot{State: Failed, Err: err.Error()}
			return
		}
		l.snap = Snapshot{State: Ready, Cars: cars}
	})
}

// Snapshot returns the current state. Cars is shared and must not be
// modified.
func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// Cars returns the catalog or the error of Snapshot.Error.
func (l *Loader) Cars() ([]dal.Car, error) {
	snap := l.Snapshot()
	if err := snap.Error(); err != nil {
		return nil, err
	}
	return snap.Cars, nil
}
