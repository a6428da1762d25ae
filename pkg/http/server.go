package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/Accessx/pkg/http/router"
	"github.com/lintang-b-s/Accessx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Accessx/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. start the API in the background, Wait blocks until it stops.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	edgeCostService controllers.EdgeCostService,
) *Server {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	var limiter *rate.Limiter
	if useRateLimit {
		limiter = rate.NewLimiter(rate.Limit(viper.GetFloat64("RATE_LIMIT_RPS")), viper.GetInt("RATE_LIMIT_BURST"))
	}

	server := http_router.NewAPI(log, http_router.Options{
		MaxBodyBytes:      viper.GetInt64("MAX_REQUEST_BODY_BYTES"),
		TrustProxyHeaders: viper.GetBool("TRUST_PROXY_HEADERS"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, config, limiter, edgeCostService)
	})
	s.g = g

	return s
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
