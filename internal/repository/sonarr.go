package repository

import (
	"context"
	"time"

	"github.com/arrdeck/arrdeck/internal/arr"
)

// Sonarr wraps the Sonarr client, turning each operation into a
// single-shot producer that emits exactly one success or failure.
type Sonarr struct {
	client *arr.SonarrClient
}

// NewSonarr creates a repository over the given client.
func NewSonarr(client *arr.SonarrClient) *Sonarr {
	return &Sonarr{client: client}
}

// SystemStatus fetches the server's status record.
func (r *Sonarr) SystemStatus(ctx context.Context) <-chan Result[*arr.SystemStatus] {
	return run(ctx, r.client.GetSystemStatus)
}

// Health fetches the server's health check results.
func (r *Sonarr) Health(ctx context.Context) <-chan Result[[]arr.HealthCheck] {
	return run(ctx, r.client.GetHealth)
}

// DiskSpace fetches per-mount disk usage.
func (r *Sonarr) DiskSpace(ctx context.Context) <-chan Result[[]arr.DiskSpace] {
	return run(ctx, r.client.GetDiskSpace)
}

// Series fetches the full series library.
func (r *Sonarr) Series(ctx context.Context) <-chan Result[[]arr.Series] {
	return run(ctx, r.client.GetAllSeries)
}

// SeriesByID fetches one series.
func (r *Sonarr) SeriesByID(ctx context.Context, id int) <-chan Result[*arr.Series] {
	return run(ctx, func(ctx context.Context) (*arr.Series, error) {
		return r.client.GetSeries(ctx, id)
	})
}

// AddSeries adds a series and emits the stored record.
func (r *Sonarr) AddSeries(ctx context.Context, series arr.Series) <-chan Result[*arr.Series] {
	return run(ctx, func(ctx context.Context) (*arr.Series, error) {
		return r.client.AddSeries(ctx, series)
	})
}

// UpdateSeries updates a series and emits the stored record.
func (r *Sonarr) UpdateSeries(ctx context.Context, series arr.Series) <-chan Result[*arr.Series] {
	return run(ctx, func(ctx context.Context) (*arr.Series, error) {
		return r.client.UpdateSeries(ctx, series)
	})
}

// DeleteSeries removes a series.
func (r *Sonarr) DeleteSeries(ctx context.Context, id int, deleteFiles bool) <-chan Result[struct{}] {
	return run(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteSeries(ctx, id, deleteFiles)
	})
}

// Episodes fetches all episodes of a series.
func (r *Sonarr) Episodes(ctx context.Context, seriesID int) <-chan Result[[]arr.Episode] {
	return run(ctx, func(ctx context.Context) ([]arr.Episode, error) {
		return r.client.GetEpisodes(ctx, seriesID)
	})
}

// Queue fetches a page of the download queue.
func (r *Sonarr) Queue(ctx context.Context, opts arr.QueueOptions) <-chan Result[*arr.QueuePage] {
	return run(ctx, func(ctx context.Context) (*arr.QueuePage, error) {
		return r.client.GetQueue(ctx, opts)
	})
}

// RemoveQueueItem removes one queue item.
func (r *Sonarr) RemoveQueueItem(ctx context.Context, id int, opts arr.QueueDeleteOptions) <-chan Result[struct{}] {
	return run(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteQueueItem(ctx, id, opts)
	})
}

// Calendar fetches episodes airing in the date range.
func (r *Sonarr) Calendar(ctx context.Context, start, end time.Time) <-chan Result[[]arr.Episode] {
	return run(ctx, func(ctx context.Context) ([]arr.Episode, error) {
		return r.client.GetCalendar(ctx, start, end)
	})
}

// Missing fetches a page of monitored episodes without files.
func (r *Sonarr) Missing(ctx context.Context, opts arr.PageOptions) <-chan Result[*arr.MissingPage] {
	return run(ctx, func(ctx context.Context) (*arr.MissingPage, error) {
		return r.client.GetMissing(ctx, opts)
	})
}

// Search looks up series by term.
func (r *Sonarr) Search(ctx context.Context, term string) <-chan Result[[]arr.Series] {
	return run(ctx, func(ctx context.Context) ([]arr.Series, error) {
		return r.client.SearchSeries(ctx, term)
	})
}

// ExecuteCommand queues a named command.
func (r *Sonarr) ExecuteCommand(ctx context.Context, body arr.SonarrCommandBody) <-chan Result[*arr.CommandResponse] {
	return run(ctx, func(ctx context.Context) (*arr.CommandResponse, error) {
		return r.client.ExecuteCommand(ctx, body)
	})
}
