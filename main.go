package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/config"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/logger"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway/handlers"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/ids"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}

	if level, lerr := zapcore.ParseLevel(cfg.LogLevel); lerr == nil {
		logger.SetLevel(level)
	}
	ids.SetNodeID(cfg.NodeID)

	gw := gateway.NewServer(cfg)
	handlers.RegisterAll(gw.Disp())

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	gw.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: engine,
	}

	go func() {
		logger.Infof("[gateway] listening on %s", cfg.ListenAddr)
		if serr := srv.ListenAndServe(); serr != nil && serr != http.ErrServerClosed {
			logger.Errorf("[gateway] serve: %v", serr)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("[gateway] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(ctx); serr != nil {
		logger.Warnf("[gateway] shutdown: %v", serr)
	}
	gw.Close()
	_ = logger.Log.Sync()
}
