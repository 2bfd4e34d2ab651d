package arr

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Default sort applied to the Radarr wanted/missing endpoint.
const (
	radarrMissingSortKey = "physicalRelease"
	radarrMissingSortDir = "desc"
)

// RadarrClient is a client for interacting with the Radarr API
type RadarrClient struct {
	*Client
}

// NewRadarrClient creates a new Radarr API client
func NewRadarrClient(cfg ClientConfig) *RadarrClient {
	return &RadarrClient{
		Client: NewClient(cfg),
	}
}

// Movie represents a movie in Radarr
type Movie struct {
	ID                  int              `json:"id,omitempty"`
	Title               string           `json:"title"`
	OriginalTitle       string           `json:"originalTitle,omitempty"`
	SortTitle           string           `json:"sortTitle,omitempty"`
	TitleSlug           string           `json:"titleSlug,omitempty"`
	Year                int              `json:"year"`
	Status              string           `json:"status"`
	Overview            string           `json:"overview,omitempty"`
	Studio              string           `json:"studio,omitempty"`
	Path                string           `json:"path,omitempty"`
	RootFolderPath      string           `json:"rootFolderPath,omitempty"`
	QualityProfileID    int              `json:"qualityProfileId,omitempty"`
	Monitored           bool             `json:"monitored"`
	MinimumAvailability string           `json:"minimumAvailability,omitempty"`
	IsAvailable         bool             `json:"isAvailable,omitempty"`
	Runtime             int              `json:"runtime,omitempty"`
	TmdbID              int              `json:"tmdbId,omitempty"`
	ImdbID              string           `json:"imdbId,omitempty"`
	Certification       string           `json:"certification,omitempty"`
	Genres              []string         `json:"genres,omitempty"`
	Tags                []int            `json:"tags,omitempty"`
	InCinemas           *time.Time       `json:"inCinemas,omitempty"`
	PhysicalRelease     *time.Time       `json:"physicalRelease,omitempty"`
	DigitalRelease      *time.Time       `json:"digitalRelease,omitempty"`
	Added               time.Time        `json:"added,omitempty"`
	Ratings             Ratings          `json:"ratings,omitempty"`
	Images              []Image          `json:"images,omitempty"`
	HasFile             bool             `json:"hasFile"`
	SizeOnDisk          int64            `json:"sizeOnDisk,omitempty"`
	MovieFile           *MovieFile       `json:"movieFile,omitempty"`
	AddOptions          *MovieAddOptions `json:"addOptions,omitempty"`
}

// MovieFile represents a downloaded movie file
type MovieFile struct {
	ID           int          `json:"id"`
	MovieID      int          `json:"movieId"`
	RelativePath string       `json:"relativePath"`
	Path         string       `json:"path"`
	Size         int64        `json:"size"`
	DateAdded    time.Time    `json:"dateAdded"`
	Quality      QualityModel `json:"quality"`
	Languages    []Language   `json:"languages,omitempty"`
}

// MovieAddOptions controls server-side behaviour when adding a movie
type MovieAddOptions struct {
	Monitor        string `json:"monitor,omitempty"`
	SearchForMovie bool   `json:"searchForMovie"`
}

// RadarrCommandBody represents a command request to Radarr
type RadarrCommandBody struct {
	Name     string `json:"name"`
	MovieIDs []int  `json:"movieIds,omitempty"`
}

// GetAllMovies retrieves all movies from Radarr
func (c *RadarrClient) GetAllMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.get(ctx, "movie", &movies); err != nil {
		return nil, fmt.Errorf("get all movies: %w", err)
	}

	return movies, nil
}

// GetMovie retrieves a specific movie by ID
func (c *RadarrClient) GetMovie(ctx context.Context, id int) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("movie/%d", id), &movie); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}

	return &movie, nil
}

// AddMovie adds a movie to Radarr and returns the stored record
func (c *RadarrClient) AddMovie(ctx context.Context, movie Movie) (*Movie, error) {
	var added Movie
	if err := c.post(ctx, "movie", movie, &added); err != nil {
		return nil, fmt.Errorf("add movie %q: %w", movie.Title, err)
	}

	return &added, nil
}

// UpdateMovie updates an existing movie and returns the stored record
func (c *RadarrClient) UpdateMovie(ctx context.Context, movie Movie) (*Movie, error) {
	var updated Movie
	if err := c.put(ctx, fmt.Sprintf("movie/%d", movie.ID), movie, &updated); err != nil {
		return nil, fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	return &updated, nil
}

// DeleteMovie removes a movie from Radarr
func (c *RadarrClient) DeleteMovie(ctx context.Context, id int, deleteFiles bool) error {
	endpoint := fmt.Sprintf("movie/%d?deleteFiles=%t", id, deleteFiles)

	if err := c.delete(ctx, endpoint); err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	return nil
}

// GetCalendar retrieves movies releasing within the given date range
func (c *RadarrClient) GetCalendar(ctx context.Context, start, end time.Time) ([]Movie, error) {
	params := url.Values{}
	params.Set("start", start.Format(calendarDateFormat))
	params.Set("end", end.Format(calendarDateFormat))

	var movies []Movie
	if err := c.get(ctx, "calendar?"+params.Encode(), &movies); err != nil {
		return nil, fmt.Errorf("get calendar: %w", err)
	}

	return movies, nil
}

// WantedPage represents the paginated response from wanted/missing
type WantedPage struct {
	Page          int     `json:"page"`
	PageSize      int     `json:"pageSize"`
	SortKey       string  `json:"sortKey"`
	SortDirection string  `json:"sortDirection"`
	TotalRecords  int     `json:"totalRecords"`
	Records       []Movie `json:"records"`
}

// GetMissing retrieves monitored movies without a file
func (c *RadarrClient) GetMissing(ctx context.Context, opts PageOptions) (*WantedPage, error) {
	opts = opts.withDefaults(radarrMissingSortKey, radarrMissingSortDir)

	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", opts.Page))
	params.Set("pageSize", fmt.Sprintf("%d", opts.PageSize))
	params.Set("sortKey", opts.SortKey)
	params.Set("sortDirection", opts.SortDir)

	var page WantedPage
	if err := c.get(ctx, "wanted/missing?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("get missing movies: %w", err)
	}

	c.logger.DebugContext(ctx, "retrieved missing movies",
		"total_items", page.TotalRecords,
		"page_size", page.PageSize)

	return &page, nil
}

// SearchMovies looks up movies matching the term against Radarr's
// metadata sources; results are not part of the library yet
func (c *RadarrClient) SearchMovies(ctx context.Context, term string) ([]Movie, error) {
	params := url.Values{}
	params.Set("term", term)

	var results []Movie
	if err := c.get(ctx, "movie/lookup?"+params.Encode(), &results); err != nil {
		return nil, fmt.Errorf("search movies %q: %w", term, err)
	}

	return results, nil
}

// ExecuteCommand queues a named command against Radarr
func (c *RadarrClient) ExecuteCommand(ctx context.Context, body RadarrCommandBody) (*CommandResponse, error) {
	return c.execCommand(ctx, body)
}
