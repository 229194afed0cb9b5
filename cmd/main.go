package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cc-catalog/catalog"
	"cc-catalog/config"
	"cc-catalog/logging"
	"cc-catalog/notifier"
	"cc-catalog/renderer"
	"cc-catalog/resolver"
	"cc-catalog/router"
	"cc-catalog/scheduler"
	"cc-catalog/scraper"
	"cc-catalog/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "Path to an optional .env file")
		query   = flag.String("query", "", "Plugin query string, e.g. mode=GENERIC&url=...")
		mode    = flag.String("mode", "", "Navigation mode: SHOWS, GENERIC, SEASON, EPISODES, PLAY")
		pageURL = flag.String("url", "", "Page URL for the selected mode")
		name    = flag.String("name", "", "Display name carried by the navigation entry")
		mgid    = flag.String("mgid", "", "Media locator for PLAY")
		asJSON  = flag.Bool("json", false, "Write the result as JSON")
	)
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		logging.New("cc-catalog", false).WithError(err).Fatal("failed to load env file")
	}
	cfg := config.Load()
	log := logging.New("cc-catalog", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache := storage.NewSQLiteStorage(cfg.DataPath, log)
	if err := cache.Initialize(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}
	defer cache.Close()

	notes := buildNotifier(cfg, log)
	fetcher := scraper.NewScraper(cfg, cache, log)

	if cfg.RunMode == "scheduler" {
		runScheduler(ctx, cfg, cache, fetcher, notes, log)
		return
	}

	params := router.Params{Mode: catalog.Mode(*mode), URL: *pageURL, Name: *name, Locator: *mgid}
	if *query != "" {
		p, err := router.ParseParams(*query)
		if err != nil {
			log.WithError(err).Fatal("invalid query")
		}
		params = p
	}

	browser := catalog.NewCatalog(cfg, fetcher, cache, log)
	res := resolver.NewResolver(cfg, resolver.NewYTDLPFromConfig(cfg, log), cache, log)
	out := renderer.NewConsole(os.Stdout, *asJSON)

	r := router.NewRouter(cfg, browser, res, out, notes, log)
	if err := r.Run(ctx, params); err != nil {
		cache.Close()
		os.Exit(1)
	}
}

func buildNotifier(cfg *config.Config, log *logrus.Entry) notifier.Notifier {
	notes := notifier.Multi{notifier.NewLogNotifier(log)}

	emailCfg := notifier.GetEmailConfigFromEnv(log)
	if !emailCfg.Enabled() {
		log.Debug("email notifications disabled: missing configuration")
		return notes
	}
	email, err := notifier.NewEmailNotifier(emailCfg, cfg.AddonID, log)
	if err != nil {
		log.WithError(err).Warn("failed to create email notifier")
		return notes
	}
	return append(notes, email)
}

func runScheduler(ctx context.Context, cfg *config.Config, cache *storage.SQLiteStorage, fetcher scraper.ScraperInterface, notes notifier.Notifier, log *logrus.Entry) {
	sched := scheduler.NewScheduler(log)

	purge := scheduler.NewCachePurgeJob(cache, log)
	if err := sched.AddJob(cfg.PurgeSpec, purge); err != nil {
		log.WithError(err).Fatal("failed to schedule cache purge")
	}
	warm := scheduler.NewCacheWarmJob(cfg, fetcher, notes, log)
	if err := sched.AddJob(cfg.WarmSpec, warm); err != nil {
		log.WithError(err).Fatal("failed to schedule cache warm-up")
	}

	sched.Start()
	if os.Getenv("RUN_AT_STARTUP") == "true" {
		if err := sched.RunJobNow(ctx, warm.Name()); err != nil {
			log.WithError(err).Warn("initial warm-up failed")
		}
	}
	displayCacheStats(ctx, cache, log)

	log.Info("application running, press Ctrl+C to exit")
	<-ctx.Done()
	log.Info("shutting down")
	sched.Stop()
}

func displayCacheStats(ctx context.Context, cache *storage.SQLiteStorage, log *logrus.Entry) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stats, err := cache.GetStats(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to get cache stats")
		return
	}
	log.WithFields(logrus.Fields{
		"entries": stats["total"],
		"expired": stats["expired"],
		"bytes":   stats["bytes"],
	}).Info("cache statistics")
}
