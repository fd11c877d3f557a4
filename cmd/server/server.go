package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/mech-arsenal/internal/config"
	"github.com/KirkDiggler/mech-arsenal/internal/handlers/arsenal/v1alpha1"
	"github.com/KirkDiggler/mech-arsenal/internal/logger"
	"github.com/KirkDiggler/mech-arsenal/internal/metrics"
	"github.com/KirkDiggler/mech-arsenal/internal/orchestrators/arsenal"
	"github.com/KirkDiggler/mech-arsenal/internal/pack"
	"github.com/KirkDiggler/mech-arsenal/internal/pkg/clock"
	"github.com/KirkDiggler/mech-arsenal/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-arsenal/internal/redis"
	"github.com/KirkDiggler/mech-arsenal/internal/repositories/inventory"
	"github.com/KirkDiggler/mech-arsenal/internal/server"
)

const shutdownTimeout = 30 * time.Second

var (
	configPath string
	envFile    string
	grpcPort   int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the arsenal gRPC server and its admin HTTP endpoint.

Several servers may share one Redis. Writes to an item are checked against
the version that was read, so a change racing another server fails with
ABORTED and can be retried.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", os.Getenv("ARSENAL_CONFIG"), "Path to a YAML config file")
	serverCmd.Flags().StringVar(&envFile, "env-file", "", "Env file with ARSENAL_* overrides (default .env if present)")
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides config)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}

	cfg, err := config.Load(configPath, envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.GRPC.Port = grpcPort
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "arsenal"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	packs, err := loadPacks(cfg.Packs, m)
	if err != nil {
		return err
	}

	redisClient, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{PoolSize: cfg.Redis.PoolSize})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close redis client: %v", err)
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err = redis.Ping(pingCtx, redisClient)
	pingCancel()
	if err != nil {
		return fmt.Errorf("redis at %s is not reachable: %w", cfg.Redis.Endpoint, err)
	}

	inventoryRepo, err := inventory.NewRedis(&inventory.RedisConfig{
		Client: redisClient,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create inventory repository: %w", err)
	}

	bus := events.NewBus()
	m.Subscribe(bus)

	arsenalService, err := arsenal.NewOrchestrator(&arsenal.Config{
		Packs:            packs,
		InventoryRepo:    inventoryRepo,
		IDGenerator:      idgen.NewUUID("inst"),
		EventBus:         bus,
		Metrics:          m,
		PreviewCacheSize: cfg.PreviewCache.Size,
		PreviewCacheTTL:  cfg.PreviewCache.TTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create arsenal orchestrator: %w", err)
	}

	arsenalHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		ArsenalService: arsenalService,
	})
	if err != nil {
		return fmt.Errorf("failed to create arsenal handler: %w", err)
	}

	grpcLogger := logger.GRPCLogger(slog.Default())
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpcLogger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpcLogger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterArsenalServiceServer(srv, arsenalHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("gRPC server starting on port %d...", cfg.GRPC.Port)
		if err := srv.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	var admin *server.Admin
	if cfg.HTTP.Port > 0 {
		admin, err = server.NewAdmin(&server.AdminConfig{
			Port:     cfg.HTTP.Port,
			Gatherer: reg,
			Packs:    packs,
			Metrics:  m,
			Ready: func(ctx context.Context) error {
				return redis.Ping(ctx, redisClient)
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create admin server: %w", err)
		}

		adminLis, err := net.Listen("tcp", admin.Addr())
		if err != nil {
			return fmt.Errorf("failed to listen for admin: %w", err)
		}
		g.Go(func() error {
			return admin.Serve(adminLis)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if admin != nil {
			if err := admin.Shutdown(shutdownCtx); err != nil {
				log.Printf("Admin server shutdown: %v", err)
			}
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

// loadPacks registers every configured pack file
func loadPacks(paths []string, m *metrics.Metrics) (*pack.Registry, error) {
	registry := pack.NewRegistry()
	if len(paths) == 0 {
		slog.Warn("no item packs configured")
	}

	for _, path := range paths {
		p, err := pack.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load pack %s: %w", path, err)
		}
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("failed to register pack %s: %w", path, err)
		}
		m.SetPackItems(p.Key(), p.Len())
		slog.Info("pack loaded", "key", p.Key(), "name", p.Name(), "items", p.Len(), "path", path)
	}
	return registry, nil
}
