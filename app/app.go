package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/booknest/booknest/config"
	"github.com/booknest/booknest/internal/handler"
	"github.com/booknest/booknest/internal/server"
	"github.com/booknest/booknest/internal/service/catalog"
	"github.com/booknest/booknest/internal/service/collection"
	"github.com/booknest/booknest/internal/service/identity"
	"github.com/booknest/booknest/pkg/logger"
	"go.uber.org/zap"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "booknest")

	h := handler.New(log, cfg,
		collection.NewService(log, cfg),
		catalog.NewService(log, cfg),
		identity.NewService(log, cfg),
	)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
