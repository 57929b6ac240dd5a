package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	_ "aquabot_telemetry/docs"
	"aquabot_telemetry/internal/cache"
	"aquabot_telemetry/internal/handlers"
	"aquabot_telemetry/internal/ingest"
	"aquabot_telemetry/internal/metrics"
	"aquabot_telemetry/internal/repository"
	"aquabot_telemetry/internal/repository/db"
	"aquabot_telemetry/internal/server"
	"aquabot_telemetry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	defaultSimTick  = time.Second
)

var (
	servePort      string
	serveSimulator bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the telemetry API server",
	Long: `Starts the HTTP server (POST/GET /api/data, /api/dashboard, /ws, /health, /metrics).
It shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("simulate") {
			cfg.Simulator.Enabled = serveSimulator
		}
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveSimulator, "simulate", false, "feed readings from the built-in boat simulator")
}

func runServe(parent context.Context) error {
	gin.SetMode(cfg.Server.Mode)

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("sqlite_close_failed", "err", cerr)
		}
	}()
	log.Infow("sqlite_ready", "path", cfg.DB.Path)

	window, err := cache.New(cache.Options{
		Enabled:  cfg.Redis.Enabled,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		return err
	}
	defer func() { _ = window.Close() }()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		Window:  cfg.Telemetry.Window,
		Cache:   window,
		Metrics: m,
		Log:     log,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Config{
		Metrics:        m,
		StreamInterval: cfg.Stream.Interval,
	})
	srv := server.New(cfg.Server.Port, apiHandler.InitRoutes())

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("http_server_starting",
			"addr", srv.Addr(),
			"window", cfg.Telemetry.Window,
			"redis", cfg.Redis.Enabled,
			"metrics", cfg.Metrics.Enabled,
			"simulator", cfg.Simulator.Enabled,
			"mqtt", cfg.MQTT.Enabled,
		)
		return srv.Run()
	})

	if cfg.Simulator.Enabled {
		tick := cfg.Simulator.Tick
		if tick <= 0 {
			tick = defaultSimTick
		}
		g.Go(func() error {
			services.Simulator.Run(ctx, tick)
			return nil
		})
	}

	if cfg.MQTT.Enabled {
		sub := ingest.NewSubscriber(ingest.Options{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
			QoS:      byte(cfg.MQTT.QoS),
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		}, services.Telemetry, log)
		g.Go(func() error { return sub.Run(ctx) })
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Infow("shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
