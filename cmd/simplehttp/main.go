package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/Brownie44l1/simplehttp/internal/config"
	"github.com/Brownie44l1/simplehttp/internal/console"
	"github.com/Brownie44l1/simplehttp/internal/handlers"
	"github.com/Brownie44l1/simplehttp/internal/httpserver"
	"github.com/Brownie44l1/simplehttp/internal/logger"
	"github.com/Brownie44l1/simplehttp/internal/router"
	"github.com/Brownie44l1/simplehttp/internal/server"
	"github.com/Brownie44l1/simplehttp/internal/stats"

	_ "github.com/joho/godotenv/autoload"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", defaultConfigFile(), "path to the JSON config file")
	root := flag.String("root", "", "directory to serve files from")
	port := flag.Int("port", -1, "port to listen on, 0 picks a free port")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *port >= 0 {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(os.Stderr, logger.Options{Level: cfg.Log.Level, Color: cfg.Log.Color})
	if err != nil {
		return err
	}
	defer log.Sync()

	undoMaxprocs, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(fmt.Sprintf(strings.TrimPrefix(format, "maxprocs: "), args...))
	}))
	if err != nil {
		log.Warn("setting GOMAXPROCS", logger.Err(err))
	}
	defer undoMaxprocs()

	tracker := stats.NewTracker()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		stats.NewCollector(tracker),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	routes, err := buildRoutes(cfg, registry, log)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Addr:           cfg.Addr(),
		Root:           cfg.Root,
		MimeTypes:      cfg.MimeTypes,
		IndexFiles:     cfg.IndexFiles,
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
		MaxConnections: cfg.MaxConnections,
	}, routes, tracker, server.WithLogger(log))
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	stop := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(ctx)
	}

	consoleDone := make(chan error, 1)
	go func() {
		consoleDone <- console.New(os.Stdin, os.Stdout, tracker, stop).Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case err := <-consoleDone:
			if err == nil {
				return nil
			}
			if !errors.Is(err, io.EOF) {
				log.Warn("console closed", logger.Err(err))
			}
			consoleDone = nil
		case sig := <-quit:
			log.Info("shutting down", logger.F("signal", sig.String()))
			if err := stop(); err != nil && !errors.Is(err, server.ErrServerStopped) {
				return fmt.Errorf("stop server: %w", err)
			}
			return nil
		}
	}
}

// defaultConfigFile returns the config path from SIMPLEHTTP_CONFIGFILE or
// "config.json".
func defaultConfigFile() string {
	if path := os.Getenv(config.EnvConfigFile); path != "" {
		return path
	}
	return "config.json"
}

// loadConfig reads path if it exists, falls back to the defaults otherwise,
// and applies the environment overrides.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return config.Config{}, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func buildRoutes(cfg config.Config, registry *prometheus.Registry, log logger.Logger) (*router.Router, error) {
	routes := []router.Route{
		{Path: "foo", Handler: handlers.NewFoo()},
		{Path: "metrics", Handler: httpserver.NewHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), log)},
	}

	if cfg.Data.Books != "" {
		books, err := handlers.LoadBooks(cfg.Data.Books)
		if err != nil {
			return nil, err
		}
		routes = append(routes,
			router.Route{Path: "books", Handler: handlers.NewBooks(books)},
			router.Route{Path: "filter", Handler: handlers.NewFilter(books)},
		)
		log.Info("books loaded", logger.F("count", len(books)))
	}

	if cfg.Data.Buffy != "" {
		episodes, err := handlers.LoadEpisodes(cfg.Data.Buffy)
		if err != nil {
			return nil, err
		}
		routes = append(routes, router.Route{Path: "buffy", Handler: handlers.NewBuffy(episodes)})
		log.Info("episodes loaded", logger.F("count", len(episodes)))
	}

	r := router.New(routes...)
	log.Info("routes registered", logger.F("paths", r.Paths()))
	return r, nil
}
