package arr

import "time"

// QueueItem represents a download the server is tracking
type QueueItem struct {
	ID                      int             `json:"id"`
	Title                   string          `json:"title"`
	Status                  string          `json:"status"`
	TrackedDownloadStatus   string          `json:"trackedDownloadStatus"`
	TrackedDownloadState    string          `json:"trackedDownloadState"`
	StatusMessages          []StatusMessage `json:"statusMessages"`
	ErrorMessage            string          `json:"errorMessage"`
	DownloadID              string          `json:"downloadId"`
	Protocol                string          `json:"protocol"`
	DownloadClient          string          `json:"downloadClient"`
	Indexer                 string          `json:"indexer"`
	OutputPath              string          `json:"outputPath"`
	Size                    int64           `json:"size"`
	Sizeleft                int64           `json:"sizeleft"`
	Timeleft                string          `json:"timeleft,omitempty"`
	Added                   time.Time       `json:"added"`
	EstimatedCompletionTime *time.Time      `json:"estimatedCompletionTime"`
	Quality                 *QualityModel   `json:"quality,omitempty"`

	// Sonarr parent references; absent on Radarr instances
	SeriesID     *int `json:"seriesId,omitempty"`
	EpisodeID    *int `json:"episodeId,omitempty"`
	SeasonNumber *int `json:"seasonNumber,omitempty"`

	// Radarr parent reference; absent on Sonarr instances
	MovieID *int `json:"movieId,omitempty"`
}

// StatusMessage represents a status message in a queue item
type StatusMessage struct {
	Title    string   `json:"title"`
	Messages []string `json:"messages"`
}

// QueuePage represents the paginated response from the queue API
type QueuePage struct {
	Page          int         `json:"page"`
	PageSize      int         `json:"pageSize"`
	SortKey       string      `json:"sortKey,omitempty"`
	SortDirection string      `json:"sortDirection,omitempty"`
	TotalRecords  int         `json:"totalRecords"`
	Records       []QueueItem `json:"records"`
}

// QueueOptions controls queue pagination
type QueueOptions struct {
	Page     int
	PageSize int
}

func (o QueueOptions) withDefaults() QueueOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = 20
	}
	return o
}

// QueueDeleteOptions represents options for removing a queue item
type QueueDeleteOptions struct {
	RemoveFromClient bool `json:"removeFromClient"`
	Blocklist        bool `json:"blocklist"`
}
