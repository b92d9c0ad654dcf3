package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightdash/api"
	"github.com/Domenick1991/flightdash/config"
	"github.com/Domenick1991/flightdash/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine: recovery and CORS middleware, the two
// API endpoints, the swagger UI and the static dashboard fallback.
func NewRouter(cfg *config.Config, logger *zap.Logger, flightSvc flights.FlightUseCase) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(api.Recovery(logger), api.RequestID(), api.CORS(), api.AccessLog(logger))

	api.NewFlightHandler(flightSvc, logger).Register(engine)

	engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))

	staticDir, err := cfg.HTTP.ResolveStaticDir()
	if err != nil {
		return nil, err
	}

	// Anything that is not an API route falls through to the dashboard
	// files. Listing is disabled; the stdlib file server rejects paths
	// escaping the root.
	fileServer := http.FileServer(gin.Dir(staticDir, false))
	engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})

	return engine, nil
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, flightSvc flights.FlightUseCase) error {
	engine, err := NewRouter(cfg, logger, flightSvc)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HTTP.Address, err)
	}

	srv := &http.Server{Handler: engine}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	logger.Info("server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
