package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	app "github.com/kode4food/flagstaff"
	"github.com/kode4food/flagstaff/internal/audio"
	"github.com/kode4food/flagstaff/internal/cloud"
	"github.com/kode4food/flagstaff/internal/config"
	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/internal/input"
	"github.com/kode4food/flagstaff/internal/project"
	"github.com/kode4food/flagstaff/internal/server"
	"github.com/kode4food/flagstaff/pkg/log"
	"github.com/kode4food/flagstaff/pkg/util/call"
)

type flagstaff struct {
	cfg        *config.Config
	loaded     *project.Loaded
	redis      *redis.Client
	cloud      *cloud.Store
	terminal   *input.Terminal
	manual     *input.Manual
	engine     *engine.Engine
	frames     *server.FrameStream
	apiServer  *server.Server
	httpServer *http.Server
	cancel     context.CancelFunc
	workers    sync.WaitGroup
}

var (
	ErrLoadProject = errors.New("failed to load project")
	ErrCloudStore  = errors.New("failed to create cloud store")
	ErrTerminal    = errors.New("failed to start terminal input")
)

func main() {
	configPath := flag.String("config", "", "TOML or YAML config file")
	flag.Parse()

	cfg := config.NewDefaultConfig()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			slog.Error("Invalid configuration", log.Error(err))
			os.Exit(1)
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	s := &flagstaff{cfg: cfg}
	s.setupLogging()

	if err := s.run(); err != nil {
		slog.Error("Failed to start application", log.Error(err))
		os.Exit(1)
	}
}

func (s *flagstaff) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	defer cancel()

	if err := call.Perform(
		call.WithArg(s.loadProject, ctx),
		call.Skip(s.cfg.CloudEnabled(), s.initializeCloud),
		s.initializeInput,
		s.initializeEngine,
	); err != nil {
		s.closeResources()
		return err
	}

	s.startWorkers(ctx)
	s.startServer()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	s.shutdown()
	return nil
}

func (s *flagstaff) setupLogging() {
	level, _ := log.ParseLevel(s.cfg.LogLevel)

	env := os.Getenv("ENV")
	logger := log.NewWithLevel(app.Name, env, app.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Flagstaff starting",
		slog.String("log_level", s.cfg.LogLevel))

	slog.Info("Configuration loaded",
		slog.String("project_url", s.cfg.ProjectURL),
		slog.String("project_key", s.cfg.ProjectKey),
		slog.Int("fps", s.cfg.FPS),
		slog.Int("stage_width", s.cfg.StageWidth),
		slog.Int("stage_height", s.cfg.StageHeight),
		slog.Bool("cloud", s.cfg.CloudEnabled()),
		slog.Bool("terminal_input", s.cfg.TerminalInput),
		slog.String("api_host", s.cfg.APIHost),
		slog.Int("api_port", s.cfg.APIPort))
}

func (s *flagstaff) loadProject(ctx context.Context) error {
	loader, err := project.Open(ctx, s.cfg.ProjectURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadProject, err)
	}
	defer func() { _ = loader.Close() }()

	s.loaded, err = loader.Load(ctx, s.cfg.ProjectKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadProject, err)
	}
	return nil
}

func (s *flagstaff) initializeCloud() error {
	s.redis = redis.NewClient(&redis.Options{
		Addr: s.cfg.CloudRedisAddr,
	})
	store, err := cloud.NewStore(
		s.redis, s.cfg.CloudRedisPrefix, s.cfg.CloudSyncInterval,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCloudStore, err)
	}
	s.cloud = store
	return nil
}

func (s *flagstaff) initializeInput() error {
	if !s.cfg.TerminalInput {
		s.manual = input.NewManual()
		return nil
	}
	s.terminal = input.NewTerminal(os.Stdin,
		input.WithInterrupt(func() { s.cancel() }),
	)
	if err := s.terminal.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	return nil
}

func (s *flagstaff) initializeEngine() error {
	deps := engine.Dependencies{
		Audio:  audio.NewMixer(nil),
		Assets: s.loaded.Assets,
	}
	if s.terminal != nil {
		deps.Input = s.terminal
	} else {
		deps.Input = s.manual
	}
	if s.cloud != nil {
		deps.Cloud = s.cloud
	}

	eng, err := engine.New(s.cfg, s.loaded.Project, deps)
	if err != nil {
		return err
	}
	s.engine = eng
	return nil
}

func (s *flagstaff) startWorkers(ctx context.Context) {
	s.frames = server.NewFrameStream()
	loop := engine.NewLoop(s.engine, s.frames)

	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		err := loop.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Engine loop stopped", log.Error(err))
		}
		s.cancel()
	}()

	if s.cloud == nil {
		return
	}
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		_ = s.cloud.Run(ctx, s.engine)
	}()
}

func (s *flagstaff) startServer() {
	s.apiServer = server.NewServer(s.engine, s.manual, s.frames)
	mux := s.apiServer.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort),
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", log.Error(err))
		}
	}()
}

func (s *flagstaff) shutdown() {
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
	}
	s.apiServer.CloseWebSockets()

	s.cancel()
	s.workers.Wait()

	if err := s.engine.Stop(); err != nil &&
		!errors.Is(err, engine.ErrEngineStopped) {
		slog.Error("Engine shutdown failed", log.Error(err))
	}
	s.closeResources()

	slog.Info("Flagstaff exited")
}

func (s *flagstaff) closeResources() {
	err := call.PerformAll(
		call.Skip(s.terminal != nil, func() error {
			return s.terminal.Stop()
		}),
		call.Skip(s.redis != nil, func() error {
			return s.redis.Close()
		}),
	)
	if err != nil {
		slog.Warn("Resource cleanup failed", log.Error(err))
	}
}
