package state

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/arrdeck/arrdeck/internal/arr"
	"github.com/arrdeck/arrdeck/internal/repository"
)

// calendarWindow is the date range screens show around today.
const calendarWindow = 7 * 24 * time.Hour

// SonarrScreens groups the per-screen stores for one Sonarr server.
type SonarrScreens struct {
	Library  *Store[[]arr.Series]
	Queue    *Store[*arr.QueuePage]
	Status   *Store[*arr.SystemStatus]
	Calendar *Store[[]arr.Episode]
	Wanted   *Store[*arr.MissingPage]
}

// NewSonarrScreens builds the screen stores over one repository. All
// stores start in the loading phase; Start triggers the initial loads.
func NewSonarrScreens(repo *repository.Sonarr) *SonarrScreens {
	return &SonarrScreens{
		Library: NewStore(repo.Series),
		Queue: NewStore(func(ctx context.Context) <-chan repository.Result[*arr.QueuePage] {
			return repo.Queue(ctx, arr.QueueOptions{})
		}),
		Status: NewStore(repo.SystemStatus),
		Calendar: NewStore(func(ctx context.Context) <-chan repository.Result[[]arr.Episode] {
			now := time.Now()
			return repo.Calendar(ctx, now.Add(-calendarWindow), now.Add(calendarWindow))
		}),
		Wanted: NewStore(func(ctx context.Context) <-chan repository.Result[*arr.MissingPage] {
			return repo.Missing(ctx, arr.PageOptions{})
		}),
	}
}

// Start kicks off the initial loads without blocking the caller.
func (s *SonarrScreens) Start(ctx context.Context) {
	go s.RefreshAll(ctx)
}

// RefreshAll re-triggers every load in parallel and waits for all of
// them; no ordering between the screens is guaranteed.
func (s *SonarrScreens) RefreshAll(ctx context.Context) {
	var wg conc.WaitGroup
	wg.Go(func() { s.Library.Load(ctx) })
	wg.Go(func() { s.Queue.Load(ctx) })
	wg.Go(func() { s.Status.Load(ctx) })
	wg.Go(func() { s.Calendar.Load(ctx) })
	wg.Go(func() { s.Wanted.Load(ctx) })
	wg.Wait()
}

// RadarrScreens groups the per-screen stores for one Radarr server.
type RadarrScreens struct {
	Library  *Store[[]arr.Movie]
	Queue    *Store[*arr.QueuePage]
	Status   *Store[*arr.SystemStatus]
	Calendar *Store[[]arr.Movie]
	Wanted   *Store[*arr.WantedPage]
}

// NewRadarrScreens builds the screen stores over one repository. All
// stores start in the loading phase; Start triggers the initial loads.
func NewRadarrScreens(repo *repository.Radarr) *RadarrScreens {
	return &RadarrScreens{
		Library: NewStore(repo.Movies),
		Queue: NewStore(func(ctx context.Context) <-chan repository.Result[*arr.QueuePage] {
			return repo.Queue(ctx, arr.QueueOptions{})
		}),
		Status: NewStore(repo.SystemStatus),
		Calendar: NewStore(func(ctx context.Context) <-chan repository.Result[[]arr.Movie] {
			now := time.Now()
			return repo.Calendar(ctx, now.Add(-calendarWindow), now.Add(calendarWindow))
		}),
		Wanted: NewStore(func(ctx context.Context) <-chan repository.Result[*arr.WantedPage] {
			return repo.Missing(ctx, arr.PageOptions{})
		}),
	}
}

// Start kicks off the initial loads without blocking the caller.
func (s *RadarrScreens) Start(ctx context.Context) {
	go s.RefreshAll(ctx)
}

// RefreshAll re-triggers every load in parallel and waits for all of
// them; no ordering between the screens is guaranteed.
func (s *RadarrScreens) RefreshAll(ctx context.Context) {
	var wg conc.WaitGroup
	wg.Go(func() { s.Library.Load(ctx) })
	wg.Go(func() { s.Queue.Load(ctx) })
	wg.Go(func() { s.Status.Load(ctx) })
	wg.Go(func() { s.Calendar.Load(ctx) })
	wg.Go(func() { s.Wanted.Load(ctx) })
	wg.Wait()
}
