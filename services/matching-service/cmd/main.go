package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/grpclib/health"
	"github.com/muhammadchandra19/exchange/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	app "github.com/muhammadchandra19/exchange/services/matching-service/internal/app/engine"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange/services/matching-service/internal/usecase/dispatcher"
	eventpublisher "github.com/muhammadchandra19/exchange/services/matching-service/internal/usecase/event-publisher"
	marketdata "github.com/muhammadchandra19/exchange/services/matching-service/internal/usecase/market-data"
	orderreader "github.com/muhammadchandra19/exchange/services/matching-service/internal/usecase/order-reader"
	"github.com/muhammadchandra19/exchange/services/matching-service/internal/usecase/orderbook"
	"github.com/muhammadchandra19/exchange/services/matching-service/internal/usecase/scheduler"
	"github.com/muhammadchandra19/exchange/services/matching-service/internal/usecase/snapshot"
	"github.com/muhammadchandra19/exchange/services/matching-service/pkg/config"
	"google.golang.org/grpc"
)

const serviceName = "matching-service"

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	if err := cfg.Security.Validate(); err != nil {
		panic(errors.NewErrorDetails("invalid security descriptor", errors.SecurityConfigError, "security").WithCause(err))
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	symbol := cfg.Security.Symbol
	rclient := redis.NewClient(log, &cfg.Redis)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.NewField("action", "connect_redis"))
		return
	}
	defer rclient.Disconnect(context.Background())

	ob := orderbook.NewOrderbook(cfg.Security, orderbookv1.SystemClock{})
	oReader := orderreader.NewReader(cfg.OrderKafka, log)
	eventPublisher := eventpublisher.NewPublisher(cfg.EventKafka, log)
	defer eventPublisher.Close()

	snapshotStore := snapshot.NewSnapshotStore(rclient, cfg.Redis.Key("snapshot:"+symbol), log)
	depthPublisher := marketdata.NewDepthPublisher(
		rclient,
		cfg.Redis.Key("depth:"+symbol),
		cfg.Redis.Key(cfg.MarketData.Channel),
		log,
	)
	d := dispatcher.NewDispatcher(ob, eventPublisher, depthPublisher, cfg.MarketData.Depth, log)

	options := app.DefaultEngineOptions()
	options.SnapshotInterval = cfg.Snapshot.Interval
	options.SnapshotOffsetDelta = cfg.Snapshot.OffsetDelta
	options.CommandBuffer = cfg.App.CommandBuffer

	engine, err := app.NewEngineWithOptions(ctx, ob, oReader, snapshotStore, d, log, options)
	if err != nil {
		log.Error(err, logger.NewField("action", "restore_engine"))
		return
	}

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.NewField("action", "start_engine"))
		return
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, symbol, engine, log)
	if err != nil {
		log.Error(err, logger.NewField("action", "create_scheduler"))
		stopEngine(engine)
		return
	}
	sched.Start(ctx)

	hc := healthcheck.New(5*time.Second, map[string]healthcheck.Probe{
		"redis":  rclient.Ping,
		"engine": engine.Ready,
	})
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HealthPort),
		Handler:           hc.Handler(http.NotFoundHandler()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error(err, logger.NewField("action", "serve_health"))
		}
	}()

	grpcServer := grpc.NewServer()
	healthService := health.NewServer()
	healthService.Register(grpcServer)
	go healthService.Watch(ctx, serviceName, 5*time.Second, engine.Ready)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.App.GRPCPort))
	if err != nil {
		log.Error(err, logger.NewField("action", "listen_grpc"))
	} else {
		go func() {
			if err := grpcServer.Serve(lis); err != nil {
				log.Error(err, logger.NewField("action", "serve_grpc"))
			}
		}()
	}

	log.Info("Matching service started successfully",
		logger.NewField("symbol", symbol),
		logger.NewField("status", ob.Status()),
		logger.NewField("schedule", sched.Next()),
	)

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.NewField("signal", sig.String()))

	// running jobs finish before the engine stops accepting submissions
	<-sched.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.StopTimeout)
	defer shutdownCancel()

	healthService.Shutdown()
	grpcServer.GracefulStop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_health"))
	}

	cancel()
	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_engine"))
	}

	log.Info("Matching service shutdown complete")
}

func stopEngine(engine *app.Engine) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.StopTimeout)
	defer cancel()
	if err := engine.Stop(ctx); err != nil {
		log.Error(err, logger.NewField("action", "stop_engine"))
	}
}
