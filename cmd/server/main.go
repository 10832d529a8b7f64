package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcadapter "github.com/simaogato/kidbank-backend/internal/adapter/grpc"
	kidbankv1 "github.com/simaogato/kidbank-backend/internal/adapter/grpc/kidbank/v1"
	"github.com/simaogato/kidbank-backend/internal/adapter/quote"
	"github.com/simaogato/kidbank-backend/internal/adapter/repository/memory"
	"github.com/simaogato/kidbank-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/kidbank-backend/internal/adapter/web"
	"github.com/simaogato/kidbank-backend/internal/config"
	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/logging"
	"github.com/simaogato/kidbank-backend/internal/metrics"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
	"github.com/simaogato/kidbank-backend/internal/usecase/household"
	"github.com/simaogato/kidbank-backend/internal/usecase/investment"
	"github.com/simaogato/kidbank-backend/internal/usecase/seeder"
	"github.com/simaogato/kidbank-backend/internal/usecase/transfer"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

// store bundles the repositories of one backend
type store struct {
	kids         domain.KidRepository
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
	tickers      domain.TickerEventRepository
	unitOfWork   domain.UnitOfWork
	pinger       web.Pinger
	close        func() error
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file; environment variables are used when empty")
	flag.Parse()

	// 1. Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadAndValidate(*configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logging
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	// 3. Setup store
	st, err := openStore(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.close()

	// 4. Setup metrics and price oracle
	m := metrics.New("kidbank")
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		m,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var oracle domain.PriceOracle = quote.NewClient(
		cfg.Quote.BaseURL,
		cfg.Quote.UserAgent,
		cfg.Quote.Timeout,
		quote.WithLogger(logger.Named("quote")),
		quote.WithMetrics(m),
	)
	if b := cfg.Quote.Breaker; b.Enabled {
		oracle = quote.NewBreaker("quote", oracle, quote.BreakerSettings{
			MaxRequests:      b.MaxRequests,
			Interval:         b.Interval,
			Timeout:          b.Timeout,
			FailureThreshold: b.FailureThreshold,
		}, m)
		logger.Info("Price oracle circuit breaker enabled", zap.Uint32("failure_threshold", b.FailureThreshold))
	}

	// 5. Initialize Services (Use Cases)
	householdService := household.NewHouseholdService(st.kids, st.accounts)
	transferService := transfer.NewTransferService(st.accounts, st.transactions, st.tickers, st.unitOfWork, oracle)
	investmentService := investment.NewInvestmentService(st.accounts, st.tickers, oracle)
	dashboardService := dashboard.NewDashboardService(st.kids, st.accounts, st.transactions, st.tickers, investmentService)

	if cfg.Server.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := seeder.NewDemoSeeder(st.kids, st.accounts, st.tickers).Seed(ctx)
		cancel()
		if err != nil {
			logger.Fatal("Failed to seed demo household", zap.Error(err))
		}
		logger.Info("Demo household ready", zap.String("kid_id", seeder.DemoKidID.String()))
	}

	// 6. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger.Named("grpc"), m),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)
	grpcAdapter := grpcadapter.NewServer(householdService, transferService, investmentService, dashboardService)
	kidbankv1.RegisterKidBankServiceServer(grpcServer, grpcAdapter)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(kidbankv1.ServiceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("Failed to serve gRPC server", zap.Error(err))
		}
	}()

	// 7. Start HTTP ops server
	handler := web.NewHandler(dashboardService, st.pinger, cfg.Server.APIToken, logger.Named("web"))
	httpServer := web.NewServer(cfg.Server.HTTPAddr, web.NewRouter(handler, m, registry))

	go func() {
		logger.Info("HTTP ops server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(logger, grpcServer, healthServer, httpServer)
}

// openStore connects the configured backend
func openStore(cfg config.DatabaseConfig, logger *logging.Logger) (*store, error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn("Using in-memory store; data is lost on exit")
		s := memory.NewStore()
		return &store{
			kids:         memory.NewKidRepository(s),
			accounts:     memory.NewAccountRepository(s),
			transactions: memory.NewTransactionRepository(s),
			tickers:      memory.NewTickerEventRepository(s),
			unitOfWork:   s,
			pinger:       s,
			close:        func() error { return nil },
		}, nil
	}

	db, err := connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Database schema ready", zap.String("driver", cfg.Driver))

	return &store{
		kids:         postgres.NewKidRepository(db),
		accounts:     postgres.NewAccountRepository(db),
		transactions: postgres.NewTransactionRepository(db),
		tickers:      postgres.NewTickerEventRepository(db),
		unitOfWork:   db,
		pinger:       db,
		close:        db.Close,
	}, nil
}

// connect retries while Postgres is starting up
func connect(cfg config.DatabaseConfig, logger *logging.Logger) (*postgres.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := postgres.NewDB(cfg.Driver, cfg.ConnString())
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warn("Database not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", connectAttempts),
			zap.Error(err),
		)
		time.Sleep(connectBackoff)
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, lastErr)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(logger *logging.Logger, grpcServer *grpclib.Server, healthServer *health.Server, httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Received signal, shutting down gracefully", zap.String("signal", sig.String()))

	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	grpcServer.GracefulStop()
	logger.Info("Servers stopped")
}
