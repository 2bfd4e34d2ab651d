package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/arrdeck/arrdeck/internal/arr"
	"github.com/arrdeck/arrdeck/internal/config"
	"github.com/arrdeck/arrdeck/internal/logging"
	"github.com/arrdeck/arrdeck/internal/registry"
	"github.com/arrdeck/arrdeck/internal/repository"
	"github.com/arrdeck/arrdeck/internal/state"
	"github.com/arrdeck/arrdeck/internal/version"
)

const usage = `arrdeck - companion client for Sonarr and Radarr

Usage:
  arrdeck [flags] <command> [args]

Commands:
  servers                          list stored server connections
  add <name> <url> <api-key> <kind>  add a connection (kind: sonarr|radarr)
  remove <server>                  delete a connection
  test <server>                    check connectivity to a server
  status <server>                  show system status, health and disk space
  library <server>                 list the server's library
  queue <server>                   show the download queue
  calendar <server>                show upcoming and recent entries
  wanted <server>                  list monitored items without files
  search <server> <term>           look up new items by term
  command <server> <name> [id...]  queue a command against the server
  dashboard <server>               refresh all screens and print them

Servers are referenced by name or id prefix.
`

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ./config.yaml or /app/config.yaml)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if *showVersion {
		info := version.Get()
		fmt.Printf("arrdeck %s\n", info.Version)
		fmt.Printf("  Commit:     %s\n", info.Commit)
		fmt.Printf("  Built:      %s\n", info.BuildDate)
		fmt.Printf("  Go version: %s\n", info.GoVersion)
		fmt.Printf("  OS/Arch:    %s\n", info.Platform)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logLevel := cfg.General.LogLevel
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.Setup(logLevel, cfg.General.LogFormat)

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		logger.Error("failed to create data dir", "error", err)
		os.Exit(1)
	}

	serversPath := filepath.Join(cfg.Storage.DataDir, cfg.Storage.ServersFile)
	store, err := registry.NewStore(nil, serversPath, logger)
	if err != nil {
		logger.Error("failed to open server registry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &app{cfg: cfg, store: store, logger: logger}
	if err := app.run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	store  *registry.Store
	logger *slog.Logger
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "servers":
		return a.listServers()
	case "add":
		return a.addServer(rest)
	case "remove":
		return a.removeServer(rest)
	case "test":
		return a.testServer(ctx, rest)
	case "status":
		return a.withServer(rest, func(conn registry.ServerConnection) error {
			return a.showStatus(ctx, conn)
		})
	case "library":
		return a.withServer(rest, func(conn registry.ServerConnection) error {
			return a.showLibrary(ctx, conn)
		})
	case "queue":
		return a.withServer(rest, func(conn registry.ServerConnection) error {
			return a.showQueue(ctx, conn)
		})
	case "calendar":
		return a.withServer(rest, func(conn registry.ServerConnection) error {
			return a.showCalendar(ctx, conn)
		})
	case "wanted":
		return a.withServer(rest, func(conn registry.ServerConnection) error {
			return a.showWanted(ctx, conn)
		})
	case "search":
		if len(rest) < 2 {
			return fmt.Errorf("usage: search <server> <term>")
		}
		return a.withServer(rest[:1], func(conn registry.ServerConnection) error {
			return a.search(ctx, conn, strings.Join(rest[1:], " "))
		})
	case "command":
		if len(rest) < 2 {
			return fmt.Errorf("usage: command <server> <name> [id...]")
		}
		return a.withServer(rest[:1], func(conn registry.ServerConnection) error {
			return a.execCommand(ctx, conn, rest[1], rest[2:])
		})
	case "dashboard":
		return a.withServer(rest, func(conn registry.ServerConnection) error {
			return a.dashboard(ctx, conn)
		})
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) listServers() error {
	conns := a.store.List()
	if len(conns) == 0 {
		fmt.Println("no servers configured")
		return nil
	}
	for _, c := range conns {
		active := "active"
		if !c.Active {
			active = "inactive"
		}
		fmt.Printf("%s  %-8s %-10s %s (%s)\n", c.ID, c.Kind, active, c.Name, c.URL)
	}
	return nil
}

func (a *app) addServer(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: add <name> <url> <api-key> <kind>")
	}

	conn, err := a.store.Add(registry.ServerConnection{
		Name:   args[0],
		URL:    args[1],
		APIKey: args[2],
		Kind:   registry.Kind(strings.ToLower(args[3])),
		Active: true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("added %s (%s)\n", conn.Name, conn.ID)
	return nil
}

func (a *app) removeServer(args []string) error {
	return a.withServer(args, func(conn registry.ServerConnection) error {
		if err := a.store.Delete(conn.ID); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", conn.Name)
		return nil
	})
}

func (a *app) testServer(ctx context.Context, args []string) error {
	return a.withServer(args, func(conn registry.ServerConnection) error {
		tester := registry.NewTester(a.cfg.General.RequestTimeout, !a.cfg.General.SSLVerification)
		defer tester.Close()

		result := tester.Test(ctx, conn)
		if result.OK {
			fmt.Printf("ok: %s\n", result.Message)
			return nil
		}
		return fmt.Errorf("%s", result.Message)
	})
}

func (a *app) showStatus(ctx context.Context, conn registry.ServerConnection) error {
	switch conn.Kind {
	case registry.KindSonarr:
		repo := repository.NewSonarr(a.sonarrClient(conn))
		return printStatus(
			<-repo.SystemStatus(ctx),
			<-repo.Health(ctx),
			<-repo.DiskSpace(ctx),
		)
	default:
		repo := repository.NewRadarr(a.radarrClient(conn))
		return printStatus(
			<-repo.SystemStatus(ctx),
			<-repo.Health(ctx),
			<-repo.DiskSpace(ctx),
		)
	}
}

func printStatus(status repository.Result[*arr.SystemStatus], health repository.Result[[]arr.HealthCheck], disks repository.Result[[]arr.DiskSpace]) error {
	if !status.OK() {
		return fmt.Errorf("%s", status.Failure)
	}
	s := status.Value
	fmt.Printf("%s %s (%s) on %s %s\n", s.AppName, s.Version, s.InstanceName, s.OsName, s.OsVersion)

	if health.OK() {
		if len(health.Value) == 0 {
			fmt.Println("health: no issues")
		}
		for _, h := range health.Value {
			fmt.Printf("health [%s] %s: %s\n", h.Type, h.Source, h.Message)
		}
	} else {
		fmt.Printf("health: %s\n", health.Failure)
	}

	if disks.OK() {
		for _, d := range disks.Value {
			fmt.Printf("disk %s: %.1f GiB free of %.1f GiB\n",
				d.Path,
				float64(d.FreeSpace)/(1<<30),
				float64(d.TotalSpace)/(1<<30))
		}
	} else {
		fmt.Printf("disks: %s\n", disks.Failure)
	}

	return nil
}

func (a *app) showLibrary(ctx context.Context, conn registry.ServerConnection) error {
	switch conn.Kind {
	case registry.KindSonarr:
		res := <-repository.NewSonarr(a.sonarrClient(conn)).Series(ctx)
		if !res.OK() {
			return fmt.Errorf("%s", res.Failure)
		}
		for _, s := range res.Value {
			fmt.Printf("%5d  %s (%d) [%s]\n", s.ID, s.Title, s.Year, s.Status)
		}
		fmt.Printf("%d series\n", len(res.Value))
	default:
		res := <-repository.NewRadarr(a.radarrClient(conn)).Movies(ctx)
		if !res.OK() {
			return fmt.Errorf("%s", res.Failure)
		}
		for _, m := range res.Value {
			marker := " "
			if m.HasFile {
				marker = "*"
			}
			fmt.Printf("%5d %s %s (%d)\n", m.ID, marker, m.Title, m.Year)
		}
		fmt.Printf("%d movies\n", len(res.Value))
	}
	return nil
}

func (a *app) showQueue(ctx context.Context, conn registry.ServerConnection) error {
	var res repository.Result[*arr.QueuePage]
	if conn.Kind == registry.KindSonarr {
		res = <-repository.NewSonarr(a.sonarrClient(conn)).Queue(ctx, arr.QueueOptions{})
	} else {
		res = <-repository.NewRadarr(a.radarrClient(conn)).Queue(ctx, arr.QueueOptions{})
	}
	if !res.OK() {
		return fmt.Errorf("%s", res.Failure)
	}

	for _, item := range res.Value.Records {
		pct := 0.0
		if item.Size > 0 {
			pct = 100 * float64(item.Size-item.Sizeleft) / float64(item.Size)
		}
		fmt.Printf("%5d  %5.1f%%  %-12s %s\n", item.ID, pct, item.Status, item.Title)
	}
	fmt.Printf("%d of %d queue items\n", len(res.Value.Records), res.Value.TotalRecords)
	return nil
}

func (a *app) showCalendar(ctx context.Context, conn registry.ServerConnection) error {
	now := time.Now()
	start, end := now.AddDate(0, 0, -7), now.AddDate(0, 0, 7)

	if conn.Kind == registry.KindSonarr {
		res := <-repository.NewSonarr(a.sonarrClient(conn)).Calendar(ctx, start, end)
		if !res.OK() {
			return fmt.Errorf("%s", res.Failure)
		}
		for _, ep := range res.Value {
			title := ep.Title
			if ep.Series != nil {
				title = fmt.Sprintf("%s - S%02dE%02d %s", ep.Series.Title, ep.SeasonNumber, ep.EpisodeNumber, ep.Title)
			}
			fmt.Printf("%s  %s\n", ep.AirDateUTC.Format("2006-01-02"), title)
		}
		return nil
	}

	res := <-repository.NewRadarr(a.radarrClient(conn)).Calendar(ctx, start, end)
	if !res.OK() {
		return fmt.Errorf("%s", res.Failure)
	}
	for _, m := range res.Value {
		release := ""
		if m.PhysicalRelease != nil {
			release = m.PhysicalRelease.Format("2006-01-02")
		}
		fmt.Printf("%s  %s (%d)\n", release, m.Title, m.Year)
	}
	return nil
}

func (a *app) showWanted(ctx context.Context, conn registry.ServerConnection) error {
	if conn.Kind == registry.KindSonarr {
		res := <-repository.NewSonarr(a.sonarrClient(conn)).Missing(ctx, arr.PageOptions{})
		if !res.OK() {
			return fmt.Errorf("%s", res.Failure)
		}
		for _, ep := range res.Value.Records {
			fmt.Printf("%5d  S%02dE%02d  %s\n", ep.ID, ep.SeasonNumber, ep.EpisodeNumber, ep.Title)
		}
		fmt.Printf("page %d: %d of %d missing episodes\n", res.Value.Page, len(res.Value.Records), res.Value.TotalRecords)
		return nil
	}

	res := <-repository.NewRadarr(a.radarrClient(conn)).Missing(ctx, arr.PageOptions{})
	if !res.OK() {
		return fmt.Errorf("%s", res.Failure)
	}
	for _, m := range res.Value.Records {
		fmt.Printf("%5d  %s (%d)\n", m.ID, m.Title, m.Year)
	}
	fmt.Printf("page %d: %d of %d missing movies\n", res.Value.Page, len(res.Value.Records), res.Value.TotalRecords)
	return nil
}

func (a *app) search(ctx context.Context, conn registry.ServerConnection, term string) error {
	if conn.Kind == registry.KindSonarr {
		res := <-repository.NewSonarr(a.sonarrClient(conn)).Search(ctx, term)
		if !res.OK() {
			return fmt.Errorf("%s", res.Failure)
		}
		for _, s := range res.Value {
			fmt.Printf("tvdb:%-8d %s (%d)\n", s.TvdbID, s.Title, s.Year)
		}
		return nil
	}

	res := <-repository.NewRadarr(a.radarrClient(conn)).Search(ctx, term)
	if !res.OK() {
		return fmt.Errorf("%s", res.Failure)
	}
	for _, m := range res.Value {
		fmt.Printf("tmdb:%-8d %s (%d)\n", m.TmdbID, m.Title, m.Year)
	}
	return nil
}

func (a *app) execCommand(ctx context.Context, conn registry.ServerConnection, name string, idArgs []string) error {
	ids := make([]int, 0, len(idArgs))
	for _, s := range idArgs {
		id, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid id %q", s)
		}
		ids = append(ids, id)
	}

	var res repository.Result[*arr.CommandResponse]
	if conn.Kind == registry.KindSonarr {
		body := arr.SonarrCommandBody{Name: name, EpisodeIDs: ids}
		res = <-repository.NewSonarr(a.sonarrClient(conn)).ExecuteCommand(ctx, body)
	} else {
		body := arr.RadarrCommandBody{Name: name, MovieIDs: ids}
		res = <-repository.NewRadarr(a.radarrClient(conn)).ExecuteCommand(ctx, body)
	}
	if !res.OK() {
		return fmt.Errorf("%s", res.Failure)
	}

	fmt.Printf("command %s queued (id %d, status %s)\n", res.Value.Name, res.Value.ID, res.Value.Status)
	return nil
}

// dashboard refreshes every screen store in parallel and prints the
// settled snapshots.
func (a *app) dashboard(ctx context.Context, conn registry.ServerConnection) error {
	screens, err := a.screens(ctx, conn)
	if err != nil {
		return err
	}

	switch s := screens.(type) {
	case *state.SonarrScreens:
		printSnapshot("library", s.Library.Current(), func(v []arr.Series) string {
			return fmt.Sprintf("%d series", len(v))
		})
		printSnapshot("queue", s.Queue.Current(), func(v *arr.QueuePage) string {
			return fmt.Sprintf("%d items", v.TotalRecords)
		})
		printSnapshot("status", s.Status.Current(), func(v *arr.SystemStatus) string {
			return fmt.Sprintf("%s %s", v.AppName, v.Version)
		})
		printSnapshot("calendar", s.Calendar.Current(), func(v []arr.Episode) string {
			return fmt.Sprintf("%d entries", len(v))
		})
		printSnapshot("wanted", s.Wanted.Current(), func(v *arr.MissingPage) string {
			return fmt.Sprintf("%d missing", v.TotalRecords)
		})
	case *state.RadarrScreens:
		printSnapshot("library", s.Library.Current(), func(v []arr.Movie) string {
			return fmt.Sprintf("%d movies", len(v))
		})
		printSnapshot("queue", s.Queue.Current(), func(v *arr.QueuePage) string {
			return fmt.Sprintf("%d items", v.TotalRecords)
		})
		printSnapshot("status", s.Status.Current(), func(v *arr.SystemStatus) string {
			return fmt.Sprintf("%s %s", v.AppName, v.Version)
		})
		printSnapshot("calendar", s.Calendar.Current(), func(v []arr.Movie) string {
			return fmt.Sprintf("%d entries", len(v))
		})
		printSnapshot("wanted", s.Wanted.Current(), func(v *arr.WantedPage) string {
			return fmt.Sprintf("%d missing", v.TotalRecords)
		})
	}
	return nil
}

// screens builds the screen holders for a connection and runs one full
// refresh before returning them.
func (a *app) screens(ctx context.Context, conn registry.ServerConnection) (any, error) {
	switch conn.Kind {
	case registry.KindSonarr:
		screens := state.NewSonarrScreens(repository.NewSonarr(a.sonarrClient(conn)))
		screens.RefreshAll(ctx)
		return screens, nil
	case registry.KindRadarr:
		screens := state.NewRadarrScreens(repository.NewRadarr(a.radarrClient(conn)))
		screens.RefreshAll(ctx)
		return screens, nil
	default:
		return nil, fmt.Errorf("unsupported server kind %q", conn.Kind)
	}
}

func printSnapshot[T any](name string, snap state.Snapshot[T], describe func(T) string) {
	switch snap.Phase {
	case state.PhaseSuccess:
		fmt.Printf("%-10s %s\n", name, describe(snap.Value))
	case state.PhaseError:
		fmt.Printf("%-10s error: %s\n", name, snap.Message)
	default:
		fmt.Printf("%-10s loading\n", name)
	}
}

// withServer resolves the server argument by name or id prefix.
func (a *app) withServer(args []string, fn func(registry.ServerConnection) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected a server name or id")
	}
	ref := args[0]

	var match *registry.ServerConnection
	for _, conn := range a.store.List() {
		if conn.Name == ref || strings.HasPrefix(conn.ID, ref) {
			c := conn
			if match != nil {
				return fmt.Errorf("server reference %q is ambiguous", ref)
			}
			match = &c
		}
	}
	if match == nil {
		return fmt.Errorf("no server matching %q", ref)
	}

	return fn(*match)
}

func (a *app) clientConfig(conn registry.ServerConnection) arr.ClientConfig {
	return arr.ClientConfig{
		Name:    conn.Name,
		BaseURL: conn.URL,
		APIKey:  conn.APIKey,
		Timeout: a.cfg.General.RequestTimeout,
		SkipTLS: !a.cfg.General.SSLVerification,
		Logger:  a.logger,
	}
}

func (a *app) sonarrClient(conn registry.ServerConnection) *arr.SonarrClient {
	return arr.NewSonarrClient(a.clientConfig(conn))
}

func (a *app) radarrClient(conn registry.ServerConnection) *arr.RadarrClient {
	return arr.NewRadarrClient(a.clientConfig(conn))
}
