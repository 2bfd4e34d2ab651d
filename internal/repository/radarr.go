package repository

import (
	"context"
	"time"

	"github.com/arrdeck/arrdeck/internal/arr"
)

// Radarr wraps the Radarr client, turning each operation into a
// single-shot producer that emits exactly one success or failure.
type Radarr struct {
	client *arr.RadarrClient
}

// NewRadarr creates a repository over the given client.
func NewRadarr(client *arr.RadarrClient) *Radarr {
	return &Radarr{client: client}
}

// SystemStatus fetches the server's status record.
func (r *Radarr) SystemStatus(ctx context.Context) <-chan Result[*arr.SystemStatus] {
	return run(ctx, r.client.GetSystemStatus)
}

// Health fetches the server's health check results.
func (r *Radarr) Health(ctx context.Context) <-chan Result[[]arr.HealthCheck] {
	return run(ctx, r.client.GetHealth)
}

// DiskSpace fetches per-mount disk usage.
func (r *Radarr) DiskSpace(ctx context.Context) <-chan Result[[]arr.DiskSpace] {
	return run(ctx, r.client.GetDiskSpace)
}

// Movies fetches the full movie library.
func (r *Radarr) Movies(ctx context.Context) <-chan Result[[]arr.Movie] {
	return run(ctx, r.client.GetAllMovies)
}

// MovieByID fetches one movie.
func (r *Radarr) MovieByID(ctx context.Context, id int) <-chan Result[*arr.Movie] {
	return run(ctx, func(ctx context.Context) (*arr.Movie, error) {
		return r.client.GetMovie(ctx, id)
	})
}

// AddMovie adds a movie and emits the stored record.
func (r *Radarr) AddMovie(ctx context.Context, movie arr.Movie) <-chan Result[*arr.Movie] {
	return run(ctx, func(ctx context.Context) (*arr.Movie, error) {
		return r.client.AddMovie(ctx, movie)
	})
}

// UpdateMovie updates a movie and emits the stored record.
func (r *Radarr) UpdateMovie(ctx context.Context, movie arr.Movie) <-chan Result[*arr.Movie] {
	return run(ctx, func(ctx context.Context) (*arr.Movie, error) {
		return r.client.UpdateMovie(ctx, movie)
	})
}

// DeleteMovie removes a movie.
func (r *Radarr) DeleteMovie(ctx context.Context, id int, deleteFiles bool) <-chan Result[struct{}] {
	return run(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteMovie(ctx, id, deleteFiles)
	})
}

// Queue fetches a page of the download queue.
func (r *Radarr) Queue(ctx context.Context, opts arr.QueueOptions) <-chan Result[*arr.QueuePage] {
	return run(ctx, func(ctx context.Context) (*arr.QueuePage, error) {
		return r.client.GetQueue(ctx, opts)
	})
}

// RemoveQueueItem removes one queue item.
func (r *Radarr) RemoveQueueItem(ctx context.Context, id int, opts arr.QueueDeleteOptions) <-chan Result[struct{}] {
	return run(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteQueueItem(ctx, id, opts)
	})
}

// Calendar fetches movies releasing in the date range.
func (r *Radarr) Calendar(ctx context.Context, start, end time.Time) <-chan Result[[]arr.Movie] {
	return run(ctx, func(ctx context.Context) ([]arr.Movie, error) {
		return r.client.GetCalendar(ctx, start, end)
	})
}

// Missing fetches a page of monitored movies without files.
func (r *Radarr) Missing(ctx context.Context, opts arr.PageOptions) <-chan Result[*arr.WantedPage] {
	return run(ctx, func(ctx context.Context) (*arr.WantedPage, error) {
		return r.client.GetMissing(ctx, opts)
	})
}

// Search looks up movies by term.
func (r *Radarr) Search(ctx context.Context, term string) <-chan Result[[]arr.Movie] {
	return run(ctx, func(ctx context.Context) ([]arr.Movie, error) {
		return r.client.SearchMovies(ctx, term)
	})
}

// ExecuteCommand queues a named command.
func (r *Radarr) ExecuteCommand(ctx context.Context, body arr.RadarrCommandBody) <-chan Result[*arr.CommandResponse] {
	return run(ctx, func(ctx context.Context) (*arr.CommandResponse, error) {
		return r.client.ExecuteCommand(ctx, body)
	})
}
