// Command spotify-recommender serves summer track recommendations and
// maintains the track feature catalog.
//
// Usage:
//
//	spotify-recommender [serve]
//	spotify-recommender ingest [-playlist ID]
//	spotify-recommender moods [-k N] [-min N]
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-recommender/internal/auth"
	"github.com/justestif/go-spotify-recommender/internal/config"
	"github.com/justestif/go-spotify-recommender/internal/db"
	"github.com/justestif/go-spotify-recommender/internal/ingest"
	"github.com/justestif/go-spotify-recommender/internal/logger"
	"github.com/justestif/go-spotify-recommender/internal/moods"
	"github.com/justestif/go-spotify-recommender/internal/recommend"
	"github.com/justestif/go-spotify-recommender/internal/spotify"
	"github.com/justestif/go-spotify-recommender/internal/web"
	webfs "github.com/justestif/go-spotify-recommender/web"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "serve":
		return serve(ctx, cfg, log)
	case "ingest":
		return runIngest(ctx, cfg, log, args)
	case "moods":
		return runMoods(ctx, cfg, args)
	}
	return fmt.Errorf("unknown command %q (want serve, ingest or moods)", cmd)
}

func openDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	database, err := db.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return database, nil
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}
	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	svc := recommend.New(
		recommend.NewDBCatalog(database.TrackFeatures()),
		recommend.WithLabels(cfg.LabelSet()),
		recommend.WithLogger(log.Named("recommend")),
	)

	server, err := web.NewServer(web.ServerConfig{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:    time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		ShutdownTimeout: time.Duration(cfg.HTTP.ShutdownSec) * time.Second,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		RateLimit:       cfg.HTTP.RateLimit,
		TemplatesFS:     templates,
		StaticFS:        static,
		Recommender:     svc,
		Health:          database,
		Logger:          log,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	count, err := database.TrackFeatures().Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		log.Warn("catalog is empty; run the ingest command first")
	}

	log.Info("recommender configured",
		zap.Int("catalog_tracks", count),
		zap.String("labels", cfg.Answers.Labels),
		zap.Strings("cors_origins", cfg.HTTP.CORSOrigins),
		zap.Int("rate_limit_per_minute", cfg.HTTP.RateLimit),
	)
	return server.Run(ctx)
}

func runIngest(ctx context.Context, cfg config.Config, log *zap.Logger, args []string) error {
	fset := flag.NewFlagSet("ingest", flag.ContinueOnError)
	playlistID := fset.String("playlist", cfg.Spotify.PlaylistID, "Spotify playlist ID to ingest")
	if err := fset.Parse(args); err != nil {
		return err
	}

	authenticator, err := auth.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	if err != nil {
		return fmt.Errorf("%w: please set SPOTIFY_ID and SPOTIFY_SECRET environment variables", err)
	}
	api, err := authenticator.Client(ctx)
	if err != nil {
		return err
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	svc := ingest.New(database.TrackFeatures(), ingest.WithLogger(log.Named("ingest")))
	result, err := svc.IngestPlaylist(ctx, spotify.New(api, log.Named("spotify")), *playlistID)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d tracks from playlist %s (%d without audio features)\n",
		result.TracksCount, result.PlaylistID, result.MissingFeatures)
	return nil
}

func runMoods(ctx context.Context, cfg config.Config, args []string) error {
	fset := flag.NewFlagSet("moods", flag.ContinueOnError)
	k := fset.Int("k", cfg.Moods.NumClusters, "number of mood clusters")
	minSize := fset.Int("min", cfg.Moods.MinClusterSize, "minimum tracks per cluster")
	if err := fset.Parse(args); err != nil {
		return err
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	tracks, err := recommend.NewDBCatalog(database.TrackFeatures()).ListTrackFeatures(ctx)
	if err != nil {
		return fmt.Errorf("fetching catalog: %w", err)
	}

	groups, outliers, err := moods.GroupCatalog(tracks, moods.Config{NumClusters: *k, MinClusterSize: *minSize})
	if err != nil {
		return fmt.Errorf("grouping catalog: %w", err)
	}

	fmt.Print(moods.FormatSummary(groups, outliers))
	return nil
}
