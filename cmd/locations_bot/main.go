package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/location_approval_bot/internal/adapters/discord"
	"github.com/SscSPs/location_approval_bot/internal/adapters/rcon"
	"github.com/SscSPs/location_approval_bot/internal/core/services"
	"github.com/SscSPs/location_approval_bot/internal/handlers"
	"github.com/SscSPs/location_approval_bot/internal/metrics"
	"github.com/SscSPs/location_approval_bot/internal/middleware"
	"github.com/SscSPs/location_approval_bot/internal/platform/config"
	"github.com/SscSPs/location_approval_bot/internal/repositories/database/pgsql"
	"github.com/SscSPs/location_approval_bot/pkg/database"
	"github.com/SscSPs/location_approval_bot/pkg/opsserver"
	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize structured logger
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logger.Warn("Invalid log level, using info", slog.String("level", cfg.LogLevel))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Bot stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Initialize database connection pool
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool, logger)

	// Additive, idempotent schema checks
	added, err := pgsql.NewSchemaManager(dbPool, logger).EnsureSchema(ctx)
	if err != nil {
		return err
	}
	if len(added) > 0 {
		logger.Info("Schema columns added", slog.Any("columns", added))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	markerClient := rcon.NewClient(rcon.Config{
		Host:     cfg.MinecraftServerIP,
		Port:     cfg.RCONPort,
		Password: cfg.RCONPassword,
		World:    cfg.MinecraftWorld,
		Icon:     cfg.MarkerIcon,
		MarkerY:  cfg.MarkerY,
		Timeout:  cfg.RCONTimeout,
	}, nil, m)

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return err
	}
	waiters := discord.NewWaiters()
	messenger := discord.NewMessenger(session, waiters)

	svcs := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), markerClient, messenger, m)

	rate, err := limiter.NewRateFromFormatted(cfg.CommandRate)
	if err != nil {
		return err
	}
	commandLimiter := limiter.New(memory.NewStore(), rate)

	router := handlers.NewRouter(cfg, svcs, messenger, m,
		middleware.StructuredLogging(logger),
		middleware.Recovery(messenger),
		middleware.RateLimit(commandLimiter, messenger),
	)
	gateway := discord.NewGateway(session, waiters, router.Handle, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gateway.Run(gctx)
	})
	if cfg.OpsAddr != "" {
		ops := opsserver.NewRouter(dbPool, reg, logger, cfg.IsProduction)
		g.Go(func() error {
			return opsserver.Run(gctx, cfg.OpsAddr, ops, logger)
		})
	}

	return g.Wait()
}
