// Package main runs the interactive HomeDrive client.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/client/api"
	"github.com/atinyakov/HomeDrive/internal/client/controller"
	"github.com/atinyakov/HomeDrive/internal/client/session"
	"github.com/atinyakov/HomeDrive/internal/client/shell"
	"github.com/atinyakov/HomeDrive/internal/config"
	"github.com/atinyakov/HomeDrive/internal/logger"
)

var (
	version   string
	buildDate string
)

func main() {
	options := config.Parse("homedrive")

	fmt.Printf("HomeDrive Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	httpClient, err := api.NewHTTPClient(options.CAFile, options.Timeout)
	if err != nil {
		zapLogger.Fatal("failed to build http client", zap.Error(err))
	}

	sess := session.New()
	client := api.New(api.Config{
		BaseURL:    options.ServerURL,
		HTTPClient: httpClient,
		Tokens:     sess,
		Logger:     zapLogger.Named("api"),
	})

	ctrl := controller.New(controller.Options{
		Backend:     client,
		Session:     sess,
		Opener:      shell.PrintOpener(os.Stdout),
		DownloadDir: options.DownloadDir,
		Logger:      zapLogger.Named("controller"),
		OnChange: func(s controller.Screen) {
			zapLogger.Debug("screen changed",
				zap.String("section", string(s.Nav.Section)),
				zap.Bool("overlay", s.Nav.Overlay),
				zap.Stringer("files", s.Files.State),
			)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Connected to %s. Type 'help' for a list of commands.\n", client.BaseURL())
	if err := shell.New(ctrl, client, os.Stdin, os.Stdout, zapLogger).Run(ctx); err != nil {
		zapLogger.Error("shell stopped", zap.Error(err))
	}
}
