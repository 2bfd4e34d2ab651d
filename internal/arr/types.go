package arr

import "time"

// SystemStatus represents the application status endpoint payload
type SystemStatus struct {
	AppName                string `json:"appName"`
	InstanceName           string `json:"instanceName"`
	Version                string `json:"version"`
	BuildTime              string `json:"buildTime"`
	IsDebug                bool   `json:"isDebug"`
	IsProduction           bool   `json:"isProduction"`
	IsAdmin                bool   `json:"isAdmin"`
	IsUserInteractive      bool   `json:"isUserInteractive"`
	StartupPath            string `json:"startupPath"`
	AppData                string `json:"appData"`
	OsName                 string `json:"osName"`
	OsVersion              string `json:"osVersion"`
	IsLinux                bool   `json:"isLinux"`
	IsOsx                  bool   `json:"isOsx"`
	IsWindows              bool   `json:"isWindows"`
	IsDocker               bool   `json:"isDocker"`
	Mode                   string `json:"mode"`
	Branch                 string `json:"branch"`
	Authentication         string `json:"authentication"`
	SqliteVersion          string `json:"sqliteVersion"`
	MigrationVersion       int    `json:"migrationVersion"`
	UrlBase                string `json:"urlBase"`
	RuntimeVersion         string `json:"runtimeVersion"`
	RuntimeName            string `json:"runtimeName"`
	StartTime              string `json:"startTime"`
	PackageVersion         string `json:"packageVersion"`
	PackageAuthor          string `json:"packageAuthor"`
	PackageUpdateMechanism string `json:"packageUpdateMechanism"`
}

// HealthCheck represents a single entry from the health endpoint
type HealthCheck struct {
	Source  string `json:"source"`
	Type    string `json:"type"`
	Message string `json:"message"`
	WikiURL string `json:"wikiUrl"`
}

// DiskSpace represents a single mount from the diskspace endpoint
type DiskSpace struct {
	Path       string `json:"path"`
	Label      string `json:"label"`
	FreeSpace  int64  `json:"freeSpace"`
	TotalSpace int64  `json:"totalSpace"`
}

// Image is a poster, banner or fanart reference attached to an item
type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url"`
	RemoteURL string `json:"remoteUrl,omitempty"`
}

// Ratings holds the aggregate rating for an item
type Ratings struct {
	Votes int     `json:"votes"`
	Value float64 `json:"value"`
}

// Quality identifies a quality definition
type Quality struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	Resolution int    `json:"resolution,omitempty"`
}

// QualityModel wraps a quality with its revision
type QualityModel struct {
	Quality  Quality  `json:"quality"`
	Revision Revision `json:"revision"`
}

// Revision tracks proper/repack state of a release
type Revision struct {
	Version  int  `json:"version"`
	Real     int  `json:"real"`
	IsRepack bool `json:"isRepack"`
}

// Language identifies an audio/subtitle language
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CommandResponse is the echo returned when a command is queued
type CommandResponse struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Message  string         `json:"message,omitempty"`
	Status   string         `json:"status"`
	Queued   time.Time      `json:"queued"`
	Started  *time.Time     `json:"started,omitempty"`
	Trigger  string         `json:"trigger,omitempty"`
	Body     map[string]any `json:"body,omitempty"`
	Priority string         `json:"priority,omitempty"`
}

// PageOptions controls paginated wanted/missing requests. Zero values
// are replaced with page 1, page size 20 and the kind's default sort.
type PageOptions struct {
	Page     int
	PageSize int
	SortKey  string
	SortDir  string
}

func (o PageOptions) withDefaults(sortKey, sortDir string) PageOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = 20
	}
	if o.SortKey == "" {
		o.SortKey = sortKey
	}
	if o.SortDir == "" {
		o.SortDir = sortDir
	}
	return o
}

// calendarDateFormat is the date layout the calendar endpoints accept
const calendarDateFormat = "2006-01-02"
