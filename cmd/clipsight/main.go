package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"clipsight/internal/analytics"
	"clipsight/internal/apify"
	"clipsight/internal/config"
	"clipsight/internal/dataset"
	"clipsight/internal/graphlayout"
	"clipsight/internal/logging"
	"clipsight/internal/metrics"
	"clipsight/internal/model"
	"clipsight/internal/server"
	"clipsight/internal/store"
	"clipsight/internal/textproc"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "scrape":
		cmdScrape()
	case "analyze":
		cmdAnalyze()
	case "serve":
		cmdServe()
	case "sessions":
		cmdSessions()
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println("Usage: clipsight <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./clipsight.yaml")
	fmt.Println("  scrape      Fetch videos for a hashtag and store the session")
	fmt.Println("  analyze     Print rankings, trends and hashtag pairs for a session")
	fmt.Println("  serve       Serve the analytics JSON API over a session")
	fmt.Println("  sessions    List stored scrape sessions")
}

func fatal(err error) {
	fmt.Println("error:", err)
	os.Exit(1)
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./clipsight.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		fatal(err)
	}
	abs, _ := filepath.Abs(*path)
	fmt.Println("Config written to:", abs)
}

func cmdScrape() {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	cfgPath := fs.String("config", "./clipsight.yaml", "config path")
	hashtag := fs.String("hashtag", "", "hashtag or keyword to scrape")
	limit := fs.Int("limit", 0, "number of videos (0 = config default)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if *hashtag == "" {
		fatal(errors.New("missing -hashtag"))
	}
	if *limit <= 0 {
		*limit = cfg.Apify.ResultsPerPage
	}

	client := apify.NewHTTPClient(cfg.Apify.Token)
	if cfg.Apify.BaseURL != "" {
		client = client.WithBaseURL(cfg.Apify.BaseURL)
	}
	if cfg.Apify.Actor != "" {
		client = client.WithActor(cfg.Apify.Actor)
	}
	if cfg.Apify.Timeout > 0 {
		client = client.WithTimeout(cfg.Apify.Timeout)
	}

	metrics.StartServer(cfg.Metrics.Addr)
	ctx := context.Background()

	start := time.Now()
	metrics.ScrapeRuns.Inc()
	logging.Info("scrape started", map[string]any{"hashtag": *hashtag, "limit": *limit})
	rows, err := client.ScrapeHashtag(ctx, *hashtag, *limit)
	if err != nil {
		metrics.ScrapeErrors.Inc()
		fatal(err)
	}
	metrics.ObserveScrapeDuration(start)

	ds, err := cleanRows(cfg, rows)
	if err != nil {
		fatal(err)
	}
	metrics.CleanedRows.Set(float64(ds.Len()))

	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()
	id, err := db.SaveSession(ctx, *hashtag, *limit, start.UTC(), rows)
	if err != nil {
		fatal(err)
	}

	sum := analytics.Summarize(ds)
	logging.Info("scrape finished", map[string]any{"session": id, "videos": sum.TotalVideos})
	fmt.Printf("Session %s: %d videos, %d authors, %d days covered\n",
		id, sum.TotalVideos, sum.TotalAuthors, sum.DaysCovered)
}

func cmdAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "./clipsight.yaml", "config path")
	session := fs.String("session", "", "session id (default: latest)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	ds, err := loadDataset(cfg, *session)
	if err != nil {
		fatal(err)
	}

	sum := analytics.Summarize(ds)
	fmt.Printf("Videos: %d  Authors: %d  Days: %d\n\n", sum.TotalVideos, sum.TotalAuthors, sum.DaysCovered)

	for _, metric := range analytics.Metrics {
		ranking, err := analytics.Rank(ds, metric, cfg.Analysis.TopK)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("== %s (mean %.2f) ==\n", metric, ranking.Mean)
		for _, r := range ranking.Top {
			fmt.Printf("  top    %-24s %12.0f  %s\n", r.Video.Author, r.Value, r.Video.URL)
		}
		for _, r := range ranking.Bottom {
			fmt.Printf("  bottom %-24s %12.0f  %s\n", r.Video.Author, r.Value, r.Video.URL)
		}
		fmt.Println()
	}

	authors := analytics.AuthorLeaderboard(ds, cfg.Analysis.TopK)
	fmt.Printf("== authors (mean %.2f videos) ==\n", authors.Mean)
	for _, a := range authors.Top {
		fmt.Printf("  %-24s %4d videos\n", a.Author, a.Count)
	}
	fmt.Println()

	fmt.Println("== engagement rate ==")
	for i, row := range analytics.EngagementTable(ds) {
		if i >= 10 {
			break
		}
		fmt.Printf("  #%-3d %-24s %6.2f%%  %s\n", row.Rank, row.Author, row.Display, row.URL)
	}
	fmt.Println()

	for _, w := range analytics.Windows {
		series, err := analytics.VolumeSeries(ds, w)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("== volume %-4s  buckets=%d  mean=%.2f ==\n", w, len(series.Buckets), series.Mean)
	}
	fmt.Println()

	pairs := analytics.TopPairs(ds, cfg.Analysis.TopPairs)
	fmt.Println("== hashtag pairs ==")
	for _, p := range pairs {
		fmt.Printf("  %-20s %-20s %4d\n", p.First, p.Second, p.Count)
	}

	words := analytics.CaptionWordCounts(ds)
	fmt.Println("\n== caption words ==")
	for i, wc := range words {
		if i >= 15 {
			break
		}
		fmt.Printf("  %-20s %4d\n", wc.Value, wc.Count)
	}
}

func cmdServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "./clipsight.yaml", "config path")
	session := fs.String("session", "", "session id (default: latest)")
	addr := fs.String("addr", "", "listen address (default: config)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	ds, err := loadDataset(cfg, *session)
	if err != nil {
		fatal(err)
	}
	if *addr == "" {
		*addr = cfg.Server.Addr
	}

	metrics.StartServer(cfg.Metrics.Addr)
	srv := server.New(ds, graphlayout.NewEades(), server.Options{
		TopK:       cfg.Analysis.TopK,
		TopPairs:   cfg.Analysis.TopPairs,
		LayoutSeed: cfg.Analysis.LayoutSeed,
	})
	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logging.Info("api listening", map[string]any{"addr": *addr, "videos": ds.Len()})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("api server failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	logging.Info("api stopped", nil)
}

func cmdSessions() {
	fs := flag.NewFlagSet("sessions", flag.ExitOnError)
	cfgPath := fs.String("config", "./clipsight.yaml", "config path")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()
	sessions, err := db.ListSessions(context.Background())
	if err != nil {
		fatal(err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions stored yet. Run: clipsight scrape -hashtag <tag>")
		return
	}
	for _, s := range sessions {
		fmt.Printf("%s  %-20s %4d rows  %s\n",
			s.ID, "#"+s.Hashtag, s.RowCount, s.FetchedAt.Format(time.RFC3339))
	}
}

// cleanRows runs the cleaner with the configured caption language.
func cleanRows(cfg config.Config, rows []map[string]any) (model.Dataset, error) {
	norm, err := textproc.NewNormalizer(textproc.Language(cfg.Analysis.Language))
	if err != nil {
		return model.Dataset{}, err
	}
	return dataset.NewCleaner(norm).Clean(rows)
}

// loadDataset re-cleans a stored session's raw rows. An empty id loads
// the most recent session.
func loadDataset(cfg config.Config, sessionID string) (model.Dataset, error) {
	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return model.Dataset{}, err
	}
	defer db.Close()
	ctx := context.Background()
	if sessionID == "" {
		latest, err := db.LatestSession(ctx)
		if err != nil {
			return model.Dataset{}, err
		}
		sessionID = latest.ID
	}
	rows, err := db.LoadRows(ctx, sessionID)
	if err != nil {
		return model.Dataset{}, err
	}
	return cleanRows(cfg, rows)
}
