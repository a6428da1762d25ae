package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/Accessx/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/Accessx/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/Accessx/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	_ "net/http/pprof"
)

// Options. request handling settings of the API.
type Options struct {
	MaxBodyBytes      int64 // <= 0 disables the request body limit
	TrustProxyHeaders bool  // take the client address from X-Real-IP / X-Forwarded-For
}

type API struct {
	log  *zap.Logger
	opts Options
}

func NewAPI(log *zap.Logger, opts Options) *API {
	return &API{log: log, opts: opts}
}

// Handler. router wrapped in the middleware chain, limiter nil disables rate limiting.
func (api *API) Handler(limiter *rate.Limiter, edgeCostService controllers.EdgeCostService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	edgeCostRoutes := controllers.New(edgeCostService, api.log, api.opts.MaxBodyBytes)
	edgeCostRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP(api.opts.TrustProxyHeaders), Heartbeat("healthz"), Logger(api.log)}
	if limiter != nil {
		mwChain = append(mwChain, Limit(limiter))
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	limiter *rate.Limiter,
	edgeCostService controllers.EdgeCostService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(limiter, edgeCostService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}
