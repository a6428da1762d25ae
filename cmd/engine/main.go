package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	"github.com/lintang-b-s/Accessx/pkg/http"
	"github.com/lintang-b-s/Accessx/pkg/http/usecases"
	"github.com/lintang-b-s/Accessx/pkg/logger"
	"github.com/lintang-b-s/Accessx/pkg/openinghours"
	"github.com/lintang-b-s/Accessx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("ratelimit", false, "use rate limit")
	logLevel     = flag.String("log_level", "info", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	err := util.ReadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewWithLevel(*logLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	costOptions, err := costfunction.DefaultCostOptions().WithTimezone(viper.GetString("REFERENCE_TIMEZONE"))
	if err != nil {
		logger.Fatal("invalid reference timezone", zap.Error(err))
	}

	oracle := openinghours.NewCachedOracle(viper.GetInt("OPENING_HOURS_CACHE_SIZE"))
	edgeCostService := usecases.NewEdgeCostService(logger, oracle, costOptions,
		viper.GetInt("WORKERS"), viper.GetInt("MAX_EDGES_PER_REQUEST"))

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	api.Use(ctx, logger, *useRateLimit, edgeCostService)

	signal := http.GracefulShutdown()
	cleanup()
	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("API stopped with error", zap.Error(err))
	}

	logger.Info("Accessx Edge Cost Server Stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
