package arr

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Default sort applied to the Sonarr wanted/missing endpoint.
const (
	sonarrMissingSortKey = "airDateUtc"
	sonarrMissingSortDir = "desc"
)

// SonarrClient is a client for interacting with the Sonarr API
type SonarrClient struct {
	*Client
}

// NewSonarrClient creates a new Sonarr API client
func NewSonarrClient(cfg ClientConfig) *SonarrClient {
	return &SonarrClient{
		Client: NewClient(cfg),
	}
}

// Series represents a TV series in Sonarr
type Series struct {
	ID               int               `json:"id,omitempty"`
	Title            string            `json:"title"`
	SortTitle        string            `json:"sortTitle,omitempty"`
	TitleSlug        string            `json:"titleSlug,omitempty"`
	Status           string            `json:"status"`
	Overview         string            `json:"overview,omitempty"`
	Network          string            `json:"network,omitempty"`
	AirTime          string            `json:"airTime,omitempty"`
	Year             int               `json:"year"`
	Runtime          int               `json:"runtime,omitempty"`
	Path             string            `json:"path,omitempty"`
	RootFolderPath   string            `json:"rootFolderPath,omitempty"`
	QualityProfileID int               `json:"qualityProfileId,omitempty"`
	SeriesType       string            `json:"seriesType,omitempty"`
	SeasonFolder     bool              `json:"seasonFolder,omitempty"`
	Monitored        bool              `json:"monitored"`
	TvdbID           int               `json:"tvdbId,omitempty"`
	TvRageID         int               `json:"tvRageId,omitempty"`
	ImdbID           string            `json:"imdbId,omitempty"`
	Certification    string            `json:"certification,omitempty"`
	Genres           []string          `json:"genres,omitempty"`
	Tags             []int             `json:"tags,omitempty"`
	Added            time.Time         `json:"added,omitempty"`
	Ratings          Ratings           `json:"ratings,omitempty"`
	Images           []Image           `json:"images,omitempty"`
	Seasons          []Season          `json:"seasons,omitempty"`
	Statistics       *SeriesStatistics `json:"statistics,omitempty"`
	AddOptions       *SeriesAddOptions `json:"addOptions,omitempty"`
}

// Season represents a season in a series
type Season struct {
	SeasonNumber int               `json:"seasonNumber"`
	Monitored    bool              `json:"monitored"`
	Statistics   *SeriesStatistics `json:"statistics,omitempty"`
}

// SeriesStatistics contains statistics for a series or season
type SeriesStatistics struct {
	SeasonCount       int     `json:"seasonCount,omitempty"`
	EpisodeFileCount  int     `json:"episodeFileCount"`
	EpisodeCount      int     `json:"episodeCount"`
	TotalEpisodeCount int     `json:"totalEpisodeCount"`
	SizeOnDisk        int64   `json:"sizeOnDisk"`
	PercentOfEpisodes float64 `json:"percentOfEpisodes"`
}

// SeriesAddOptions controls server-side behaviour when adding a series
type SeriesAddOptions struct {
	Monitor                   string `json:"monitor,omitempty"`
	SearchForMissingEpisodes  bool   `json:"searchForMissingEpisodes"`
	SearchForCutoffUnmetItems bool   `json:"searchForCutoffUnmetEpisodes"`
}

// Episode represents an episode in Sonarr
type Episode struct {
	ID            int          `json:"id"`
	SeriesID      int          `json:"seriesId"`
	EpisodeFileID int          `json:"episodeFileId"`
	SeasonNumber  int          `json:"seasonNumber"`
	EpisodeNumber int          `json:"episodeNumber"`
	Title         string       `json:"title"`
	Overview      string       `json:"overview,omitempty"`
	AirDate       string       `json:"airDate,omitempty"`
	AirDateUTC    time.Time    `json:"airDateUtc,omitempty"`
	HasFile       bool         `json:"hasFile"`
	Monitored     bool         `json:"monitored"`
	Series        *Series      `json:"series,omitempty"`
	EpisodeFile   *EpisodeFile `json:"episodeFile,omitempty"`
}

// EpisodeFile represents a downloaded episode file
type EpisodeFile struct {
	ID           int          `json:"id"`
	SeriesID     int          `json:"seriesId"`
	SeasonNumber int          `json:"seasonNumber"`
	RelativePath string       `json:"relativePath"`
	Path         string       `json:"path"`
	Size         int64        `json:"size"`
	DateAdded    time.Time    `json:"dateAdded"`
	Quality      QualityModel `json:"quality"`
	Languages    []Language   `json:"languages,omitempty"`
}

// SonarrCommandBody represents a command request to Sonarr
type SonarrCommandBody struct {
	Name         string `json:"name"`
	SeriesID     *int   `json:"seriesId,omitempty"`
	SeasonNumber *int   `json:"seasonNumber,omitempty"`
	EpisodeIDs   []int  `json:"episodeIds,omitempty"`
}

// GetAllSeries retrieves all series from Sonarr
func (c *SonarrClient) GetAllSeries(ctx context.Context) ([]Series, error) {
	var series []Series
	if err := c.get(ctx, "series", &series); err != nil {
		return nil, fmt.Errorf("get all series: %w", err)
	}

	return series, nil
}

// GetSeries retrieves a specific series by ID
func (c *SonarrClient) GetSeries(ctx context.Context, id int) (*Series, error) {
	var series Series
	if err := c.get(ctx, fmt.Sprintf("series/%d", id), &series); err != nil {
		return nil, fmt.Errorf("get series %d: %w", id, err)
	}

	return &series, nil
}

// AddSeries adds a series to Sonarr and returns the stored record
func (c *SonarrClient) AddSeries(ctx context.Context, series Series) (*Series, error) {
	var added Series
	if err := c.post(ctx, "series", series, &added); err != nil {
		return nil, fmt.Errorf("add series %q: %w", series.Title, err)
	}

	return &added, nil
}

// UpdateSeries updates an existing series and returns the stored record
func (c *SonarrClient) UpdateSeries(ctx context.Context, series Series) (*Series, error) {
	var updated Series
	if err := c.put(ctx, fmt.Sprintf("series/%d", series.ID), series, &updated); err != nil {
		return nil, fmt.Errorf("update series %d: %w", series.ID, err)
	}

	return &updated, nil
}

// DeleteSeries removes a series from Sonarr
func (c *SonarrClient) DeleteSeries(ctx context.Context, id int, deleteFiles bool) error {
	endpoint := fmt.Sprintf("series/%d?deleteFiles=%t", id, deleteFiles)

	if err := c.delete(ctx, endpoint); err != nil {
		return fmt.Errorf("delete series %d: %w", id, err)
	}

	return nil
}

// GetEpisodes retrieves all episodes for a series
func (c *SonarrClient) GetEpisodes(ctx context.Context, seriesID int) ([]Episode, error) {
	endpoint := fmt.Sprintf("episode?seriesId=%d", seriesID)

	var episodes []Episode
	if err := c.get(ctx, endpoint, &episodes); err != nil {
		return nil, fmt.Errorf("get episodes for series %d: %w", seriesID, err)
	}

	return episodes, nil
}

// GetCalendar retrieves episodes airing within the given date range
func (c *SonarrClient) GetCalendar(ctx context.Context, start, end time.Time) ([]Episode, error) {
	params := url.Values{}
	params.Set("start", start.Format(calendarDateFormat))
	params.Set("end", end.Format(calendarDateFormat))

	var episodes []Episode
	if err := c.get(ctx, "calendar?"+params.Encode(), &episodes); err != nil {
		return nil, fmt.Errorf("get calendar: %w", err)
	}

	return episodes, nil
}

// MissingPage represents the paginated response from wanted/missing
type MissingPage struct {
	Page          int       `json:"page"`
	PageSize      int       `json:"pageSize"`
	SortKey       string    `json:"sortKey"`
	SortDirection string    `json:"sortDirection"`
	TotalRecords  int       `json:"totalRecords"`
	Records       []Episode `json:"records"`
}

// GetMissing retrieves monitored episodes without a file
func (c *SonarrClient) GetMissing(ctx context.Context, opts PageOptions) (*MissingPage, error) {
	opts = opts.withDefaults(sonarrMissingSortKey, sonarrMissingSortDir)

	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", opts.Page))
	params.Set("pageSize", fmt.Sprintf("%d", opts.PageSize))
	params.Set("sortKey", opts.SortKey)
	params.Set("sortDirection", opts.SortDir)

	var page MissingPage
	if err := c.get(ctx, "wanted/missing?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("get missing episodes: %w", err)
	}

	c.logger.DebugContext(ctx, "retrieved missing episodes",
		"total_items", page.TotalRecords,
		"page_size", page.PageSize)

	return &page, nil
}

// SearchSeries looks up series matching the term against Sonarr's
// metadata sources; results are not part of the library yet
func (c *SonarrClient) SearchSeries(ctx context.Context, term string) ([]Series, error) {
	params := url.Values{}
	params.Set("term", term)

	var results []Series
	if err := c.get(ctx, "series/lookup?"+params.Encode(), &results); err != nil {
		return nil, fmt.Errorf("search series %q: %w", term, err)
	}

	return results, nil
}

// ExecuteCommand queues a named command against Sonarr
func (c *SonarrClient) ExecuteCommand(ctx context.Context, body SonarrCommandBody) (*CommandResponse, error) {
	return c.execCommand(ctx, body)
}
