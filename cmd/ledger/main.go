package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ledger-lab/auth"
	ledgergrpc "ledger-lab/grpc"
	"ledger-lab/handler"
	"ledger-lab/internal"
	"ledger-lab/observability"
	"ledger-lab/repositories"
	"ledger-lab/runtime"
	"ledger-lab/runtime/workers"
	"ledger-lab/services"
	"ledger-lab/sink"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	grpclog "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"google.golang.org/grpc"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ledger terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the ledger and blocks until a signal or a server failure.
// Returning instead of exiting lets every defer run.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Transfer journal (in-memory BadgerDB)
	db, err := badger.Open(buildJournalOpts(logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("journal opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing transfer journal...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug journal inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, JournalMapper)
	}

	// 3. Ledger
	monitoring := observability.NewMonitoringManager()
	accounts := repositories.NewAccountRepository()
	transfers := repositories.NewTransferRepository(db, logger, config.LimitTransfers)
	engine := services.NewTransferEngine(logger, accounts, monitoring)

	sup := workers.NewSupervisor(logger, config.RestartInterval)
	dispatcher := runtime.NewDispatcher(logger, sup, accounts, monitoring,
		config.NotificationBufferSize, config.SinkTimeout, config.StatsInterval)
	dispatcher.Add(sink.NewLogSink(logger), sink.NewJournalSink(transfers))

	accountsService := services.NewAccountsService(logger, accounts, transfers, engine, dispatcher, monitoring)

	errChan := make(chan error, 2)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		dispatcher.Start(ctx)
	}()

	// 4. HTTP server
	gin.SetMode(lo.Ternary(logger.Enabled(ctx, slog.LevelDebug), gin.DebugMode, gin.ReleaseMode))
	router := gin.New()
	router.Use(gin.Recovery(), handler.LoggingMiddleware(logger))
	handler.RegisterHealth(router, monitoring)
	var accountsMiddlewares []gin.HandlerFunc
	if config.AuthEnabled() {
		authenticator := auth.NewAuthenticator(config.OperatorName, config.OperatorPasswordHash,
			auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration))
		handler.NewAuthHandler(logger, authenticator).Register(router)
		accountsMiddlewares = append(accountsMiddlewares, auth.RequireOperator(authenticator.Issuer()))
	} else {
		logger.Warn("AUTH_SECRET not set, accounts are served without authentication")
	}
	handler.NewAccountHandler(logger, accountsService).Register(router, accountsMiddlewares...)

	httpServer := &http.Server{
		Addr:              config.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 5. gRPC health server
	listener, err := net.Listen("tcp", config.GrpcAddress())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.GrpcAddress(), err)
	}
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpclog.UnaryLoggingInterceptor(logger)))
	health := ledgergrpc.NewHealthServer(logger)
	health.Register(grpcServer)
	go func() {
		logger.Info("Starting gRPC health server", "address", config.GrpcAddress())
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 7. Graceful shutdown: stop taking transfers, then drain the notifications
	logger.Info("Shutting down gracefully...")
	health.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown incomplete", "error", err)
	}
	grpcServer.GracefulStop()
	dispatcher.Stop()
	<-dispatcherDone
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildJournalOpts(logger *slog.Logger, ctx context.Context) badger.Options {
	options := repositories.JournalOptions()
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options
}

// JournalMapper renders one journal entry on the debug inspector.
func JournalMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	var record repositories.TransferRecord
	if err := json.Unmarshal(val, &record); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Type = string(record.Direction)
	row.Detail = fmt.Sprintf("%s %s (%s)", record.Amount.String(), record.Counterparty, record.Description)
	return row
}
