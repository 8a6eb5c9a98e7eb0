package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/tower-defense/internal/config"
	"github.com/KirkDiggler/tower-defense/internal/handlers/feed"
	"github.com/KirkDiggler/tower-defense/internal/handlers/match/v1alpha1"
	"github.com/KirkDiggler/tower-defense/internal/orchestrators/match"
	"github.com/KirkDiggler/tower-defense/internal/pkg/idgen"
	"github.com/KirkDiggler/tower-defense/internal/redis"
	inventoryrepo "github.com/KirkDiggler/tower-defense/internal/repositories/inventory"
)

var (
	grpcPort     int
	httpPort     int
	configPath   string
	redisAddr    string
	maxMatches   int
	fps          int
	feedInterval time.Duration
	logLevel     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server and snapshot feed",
	Long:  `Start the match service over gRPC and stream match snapshots over WebSocket.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().IntVar(&httpPort, "http-port", 8080, "snapshot feed port")
	serverCmd.Flags().StringVar(&configPath, "config", "", "YAML rules file; built-in rules when empty")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for inventories; in-memory when empty")
	serverCmd.Flags().IntVar(&maxMatches, "max-matches", 100, "concurrent match limit, 0 for none")
	serverCmd.Flags().IntVar(&fps, "fps", 60, "simulation frames per second")
	serverCmd.Flags().DurationVar(&feedInterval, "feed-interval", feed.DefaultInterval, "snapshot push interval")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := setupLogging(logLevel); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	rules, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	repo, err := inventoryRepository(ctx)
	if err != nil {
		return err
	}

	orchestrator, err := match.NewOrchestrator(&match.Config{
		Rules:       rules,
		Repository:  repo,
		IDGenerator: idgen.NewUUID("match"),
		FPS:         fps,
		MaxMatches:  maxMatches,
	})
	if err != nil {
		return fmt.Errorf("failed to create match orchestrator: %w", err)
	}
	defer orchestrator.Close(context.Background())

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	matchHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		MatchService: orchestrator,
	})
	if err != nil {
		return fmt.Errorf("failed to create match handler: %w", err)
	}
	v1alpha1.RegisterMatchServiceServer(srv, matchHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	feedHandler, err := feed.NewHandler(&feed.Config{
		MatchService: orchestrator,
		Interval:     feedInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create feed handler: %w", err)
	}

	mux := http.NewServeMux()
	feedHandler.Register(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", httpPort),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()
	go func() {
		slog.Info("snapshot feed starting", "port", httpPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve feed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		healthServer.Shutdown()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("feed shutdown incomplete", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// inventoryRepository picks Redis when an address is configured
func inventoryRepository(ctx context.Context) (inventoryrepo.Repository, error) {
	if redisAddr == "" {
		slog.Info("storing inventories in memory")
		return inventoryrepo.NewInMemory(), nil
	}

	client, err := redis.NewClient(redisAddr, &redis.Options{DialTimeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redis.Ping(pingCtx, client); err != nil {
		return nil, err
	}

	slog.Info("storing inventories in redis", "addr", redisAddr)
	return inventoryrepo.NewRedis(&inventoryrepo.RedisConfig{Client: client})
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// logFunc adapts the interceptor logger to slog; the level values line up
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
