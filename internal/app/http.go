package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/morzdz/todo-app/internal/config"
	"github.com/morzdz/todo-app/internal/delivery/http/v1"
	"github.com/morzdz/todo-app/internal/services"
	"github.com/morzdz/todo-app/internal/storage"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: newRouter(globalLogger, globalCollection, httpCfg.StaticDir),
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func newRouter(logger zerolog.Logger, collection storage.Collection, staticDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	taskService := services.NewTaskService(logger, collection)
	v1.RegisterRoutes(router, v1.New(logger, taskService))

	if staticDir != "" {
		logger.Info().
			Str("dir", staticDir).
			Msg("serving static assets")
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	}
	return router
}
