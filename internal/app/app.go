// Package app wires the vendor library, the flat API, the session engine
// and the monitoring server into one process.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-ctp/internal/api"
	"go-ctp/internal/config"
	"go-ctp/internal/engine"
	"go-ctp/internal/flat"
	"go-ctp/internal/logging"
	"go-ctp/internal/metrics"
	"go-ctp/internal/sdk"
	"go-ctp/internal/shim"
	"go-ctp/internal/sim"
)

// App is the application lifecycle manager.
type App struct {
	cfg *config.Config
	log *zap.Logger

	registry *prometheus.Registry
	flat     *flat.API
	engine   *engine.Engine
	server   *api.Server
}

// New wires the components named by cfg. Nothing is started until Run.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}
	if err := a.wire(); err != nil {
		return nil, err
	}
	return a, nil
}

// Engine returns the session engine.
func (a *App) Engine() *engine.Engine { return a.engine }

// Run starts the engine and the API server and blocks until ctx is done or
// either of them fails. A cancelled ctx is a clean shutdown.
func (a *App) Run(ctx context.Context) error {
	if err := logging.Init(a.cfg.Log); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.Cleanup()

	a.log.Info("starting ctpd",
		zap.String("platform", a.flat.Platform()),
		zap.String("md_version", a.flat.MdApiVersion()),
		zap.String("trader_version", a.flat.TraderApiVersion()),
		zap.String("api", a.cfg.API.ListenAddress),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.engine.Run(gctx) })
	g.Go(func() error { return a.server.Run(gctx) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		a.log.Error("fatal_error", zap.Error(err))
	}
	a.log.Info("ctpd stopped")
	return err
}

// wire builds the stack on the process logger, which follows whatever
// logging.Init later configures.
func (a *App) wire() error {
	a.log = logging.L()

	simCfg := a.cfg.Sim
	simCfg.Logger = a.log.Named("sim")
	lib := newLibrary(a.cfg.App.Platform, simCfg)

	platform, err := shim.New(a.cfg.App.Platform, lib, shim.Policy(a.cfg.App.WechatPolicy), a.log)
	if err != nil {
		return fmt.Errorf("selecting platform: %w", err)
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(a.registry)

	a.flat = flat.New(platform, lib,
		flat.WithLogger(a.log.Named("flat")),
		flat.WithMetrics(m),
		flat.WithBridgeTrace(a.cfg.App.BridgeTrace),
	)

	a.server = api.NewServer(a.cfg.API.ListenAddress, nil, a.log.Named("api"),
		api.WithGatherer(a.registry),
		api.WithHubBuffer(a.cfg.Engine.EventBuffer),
	)

	a.engine = engine.New(a.cfg, a.flat)
	a.engine.SetLogger(a.log.Named("engine"))
	a.engine.SetMetrics(m)
	a.engine.SetPublisher(a.server.HubRef())
	a.server.SetEngine(a.engine)
	return nil
}

// newLibrary returns the simulated vendor build for platform. Each build
// exposes only the method set of its real counterpart.
func newLibrary(platform string, cfg sim.Config) sdk.Library {
	if platform == shim.Darwin {
		return sim.NewDarwin(cfg)
	}
	return sim.NewLinux(cfg)
}
