// Command uadetectd boots the HTTP detection service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"uadetect/internal/auditlog"
	"uadetect/internal/config"
	"uadetect/internal/httpapi"
	"uadetect/internal/logging"
	"uadetect/internal/pkg/useragent"
)

const defaultShutdownTimeout = 30 * time.Second

func main() {
	cfg := config.GetConfig()
	log := logging.New(cfg)

	log.Infof("loading detection rules from %s", cfg.RulesDir)
	detector, err := useragent.FromDir(cfg.RulesDir)
	if err != nil {
		log.WithError(err).Fatal("failed to load detection rules")
	}

	var audit *auditlog.Log
	if cfg.AuditLogEnabled {
		audit, err = auditlog.Open(cfg.AuditDBPath, log)
		if err != nil {
			log.WithError(err).Fatal("failed to open audit log database")
		}
		defer audit.Close()
	}

	srv := httpapi.NewServer(detector, log, audit)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.GetPort())
		log.Infof("listening on %s", addr)
		if err := srv.App.Listen(addr); err != nil {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	waitForShutdownSignal(srv, log)
}

func waitForShutdownSignal(srv *httpapi.Server, log *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigChan
	log.Infof("received signal: %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := srv.App.ShutdownWithContext(ctx); err != nil {
		log.Errorf("error during shutdown: %v", err)
		os.Exit(1)
	}
	log.Infof("server shutdown complete")
}
