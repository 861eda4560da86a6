package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/goowi/internal/buildinfo"
	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/cli"
	"github.com/dmitrijs2005/goowi/internal/client/config"
	"github.com/dmitrijs2005/goowi/internal/client/feed"
	"github.com/dmitrijs2005/goowi/internal/client/media"
	"github.com/dmitrijs2005/goowi/internal/client/router"
	"github.com/dmitrijs2005/goowi/internal/client/services"
	"github.com/dmitrijs2005/goowi/internal/client/session"
	"github.com/dmitrijs2005/goowi/internal/client/storage"
	"github.com/dmitrijs2005/goowi/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	cfg := config.LoadConfig()
	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := storage.Open(ctx, cfg.DataFile)
	if err != nil {
		return err
	}
	defer db.Close()

	client := api.NewHTTPClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RequestsPerSecond),
		api.WithLogger(logger.With("component", "api")),
	)
	store := session.NewStore(client, db, logger.With("component", "session"))
	client.SetTokenSource(store.Token)
	client.SetUnauthorizedHandler(store.HandleUnauthorized)

	if err := store.Restore(ctx); err != nil {
		logger.Warn(ctx, "restore session", "error", err)
	}

	nav := router.NewNavigator(store, logger.With("component", "router"))
	fd := feed.New(client, store, feed.Options{
		PageSize:       cfg.PageSize,
		ReconcileAfter: cfg.ReconcileAfter,
		ReconcileEvery: cfg.ReconcileEvery,
	}, logger.With("component", "feed"))

	var host media.Host
	if cfg.Media.Bucket != "" {
		host = media.NewS3Host(cfg.Media, nil)
	}

	app := cli.NewApp(cli.Deps{
		API:      client,
		Store:    store,
		Nav:      nav,
		Feed:     fd,
		Profiles: services.NewProfileService(client, store, logger),
		Waves:    services.NewWaveService(client, store, logger),
		Media:    host,
		Log:      logger,
	})
	app.Run(ctx, cfg.ReconcileAfter)
	return nil
}
