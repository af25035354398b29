package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/optforge/legbook/internal/config"
	"github.com/optforge/legbook/internal/dashboard"
	"github.com/optforge/legbook/internal/importer"
	"github.com/optforge/legbook/internal/storage"
)

func main() {
	var configPath, importPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&importPath, "import", "", "Import a broker statement CSV and exit")
	flag.Parse()

	logger := logrus.New()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load config")
	}

	level, err := logrus.ParseLevel(cfg.Environment.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	store, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage")
	}

	if importPath != "" {
		if err := runImport(logger, cfg, store, importPath); err != nil {
			logger.WithError(err).Fatal("Import failed")
		}
		return
	}

	runServer(logger, cfg, store)
}

// runImport loads a statement CSV into the journal and reports the outcome.
func runImport(logger *logrus.Logger, cfg *config.Config, store storage.Interface, path string) error {
	f, err := os.Open(path) // #nosec G304 -- path is a user-provided import file
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	imp := importer.New(cfg.Journal.DefaultSymbol, cfg.Journal.StrikeTick)
	result, err := imp.Read(f)
	if err != nil {
		return err
	}

	for _, trade := range result.Trades {
		if err := store.SaveTrade(trade); err != nil {
			return err
		}
	}
	for _, skipped := range result.Skipped {
		logger.WithField("group", skipped.Group).Warnf("Skipped leg group: %s", skipped.Reason)
	}
	logger.Infof("Imported %d trades (%d groups skipped)", len(result.Trades), len(result.Skipped))
	return nil
}

func runServer(logger *logrus.Logger, cfg *config.Config, store storage.Interface) {
	server := dashboard.NewServer(dashboard.Config{
		Port:      cfg.Server.Port,
		AuthToken: cfg.Server.AuthToken,
	}, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received, stopping dashboard...")
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Dashboard error")
	}
	logger.Info("Dashboard stopped")
}
