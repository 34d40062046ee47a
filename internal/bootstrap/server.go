package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/flightapp/flightbooking/api"
	"github.com/flightapp/flightbooking/config"
	"github.com/flightapp/flightbooking/internal/service/reservation"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, service reservation.ReservationUseCase) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, service),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

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

func newRouter(cfg *config.Config, service reservation.ReservationUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	flight := router.Group("/api/flight")
	api.NewInventoryHandler(service).Register(flight)
	api.NewBookingHandler(service).Register(flight)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/docs/flightbooking.swagger.json", filepath.Join(cfg.HTTP.SwaggerDir, "flightbooking.swagger.json"))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/docs/flightbooking.swagger.json"),
		)))
	}

	return router
}
