package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"bechdel/errs"
	"bechdel/film"

	"github.com/samber/lo"
)

var ErrUnavailable = errs.Errorf(errs.EUNAVAILABLE, "dataset: not loaded")

// Observer is notified about snapshot loads.
type Observer interface {
	DatasetLoaded(films, years int)
	DatasetLoadFailed(err error)
}

// Info describes the snapshot currently served.
type Info struct {
	Source   string    `json:"source"`
	Films    int       `json:"films"`
	Years    int       `json:"years"`
	LoadedAt time.Time `json:"loadedAt"`
}

type snapshot struct {
	films    []film.Film
	byYear   map[int][]film.Film
	years    []int
	loadedAt time.Time
}

func newSnapshot(films []film.Film, loadedAt time.Time) *snapshot {
	byYear := lo.GroupBy(films, func(f film.Film) int {
		return f.Year
	})
	years := lo.Keys(byYear)
	slices.Sort(years)

	return &snapshot{
		films:    films,
		byYear:   byYear,
		years:    years,
		loadedAt: loadedAt,
	}
}

// Store serves read-only queries from an immutable snapshot of the dataset.
// Loading builds a new snapshot and swaps it in atomically, so readers never
// lock and never observe a partially loaded dataset.
type Store struct {
	src      Source
	observer Observer
	debounce time.Duration
	now      func() time.Time

	current atomic.Pointer[snapshot]
	loadMu  sync.Mutex
}

type Option func(s *Store)

func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observer = o
	}
}

// WithDebounce sets how long Watch waits after the last file event before reloading.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		s.debounce = d
	}
}

func NewStore(src Source, options ...Option) *Store {
	s := &Store{
		src:      src,
		debounce: 500 * time.Millisecond,
		now:      time.Now,
	}
	for _, fn := range options {
		fn(s)
	}
	return s
}

// Load reads the whole source and replaces the current snapshot. On error the
// previous snapshot, if any, keeps being served.
func (s *Store) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	films, err := s.src.Films(ctx)
	if err != nil {
		err = fmt.Errorf("dataset: load %s: %w", s.src, err)
		if s.observer != nil {
			s.observer.DatasetLoadFailed(err)
		}
		return err
	}

	snap := newSnapshot(films, s.now())
	s.current.Store(snap)

	slog.Info("dataset loaded", "source", s.src.String(), "films", len(snap.films), "years", len(snap.years))
	if s.observer != nil {
		s.observer.DatasetLoaded(len(snap.films), len(snap.years))
	}
	return nil
}

func (s *Store) snapshot() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrUnavailable
	}
	return snap, nil
}

func (s *Store) Info() (Info, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Info{}, err
	}
	return Info{
		Source:   s.src.String(),
		Films:    len(snap.films),
		Years:    len(snap.years),
		LoadedAt: snap.loadedAt,
	}, nil
}

func (s *Store) AllFilms(_ context.Context) ([]film.Film, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.films, nil
}

func (s *Store) FilmsByYear(_ context.Context, year int) ([]film.Film, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.byYear[year], nil
}

func (s *Store) Years(_ context.Context) ([]int, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.years, nil
}
