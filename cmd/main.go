package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/konaseemakart/backend/config"
	"github.com/konaseemakart/backend/database"
	"github.com/konaseemakart/backend/handlers"
	"github.com/konaseemakart/backend/server"
	"github.com/konaseemakart/backend/sms"
)

const shutdownTimeOut = 10 * time.Second

func main() {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	config.Init()

	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	handlers.Gateway = sms.NewFast2SMS(config.Fast2SMSBaseURL, config.Fast2SMSAuth)

	svr := server.SetupRoutes()
	go func() {
		if err := svr.Run(":" + config.Port); err != nil && err != http.ErrServerClosed {
			logrus.Panicf("server stopped unexpectedly, error: %v", err)
		}
	}()
	logrus.Printf("server listening on :%s", config.Port)

	<-done

	logrus.Info("shutting down...")
	var shutdownErr error
	if err := svr.Shutdown(shutdownTimeOut); err != nil {
		shutdownErr = multierror.Append(shutdownErr, err)
	}
	if err := database.ShutdownDatabase(); err != nil {
		shutdownErr = multierror.Append(shutdownErr, err)
	}
	if shutdownErr != nil {
		logrus.WithError(shutdownErr).Error("shutdown finished with errors")
		os.Exit(1)
	}
	logrus.Info("system is shut ..zzz")
}
