// Package main serves the in-memory HomeDrive backend for local use of the
// client.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/certgen"
	"github.com/atinyakov/HomeDrive/internal/config"
	"github.com/atinyakov/HomeDrive/internal/logger"
	"github.com/atinyakov/HomeDrive/internal/mockbackend"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const (
	shutdownTimeout = 5 * time.Second
	defaultCAFile   = "homedrive-ca.pem"
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse("homedrive-mockserver")

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(cmp.Or(options.LogLevel, "info")); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	backend := mockbackend.New(zapLogger)
	server := &http.Server{
		Addr:              options.Address,
		Handler:           backend.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if options.TLS {
		// Fresh CA on every start; the client trusts it with -ca.
		caFile := cmp.Or(options.CAFile, defaultCAFile)
		ca, err := certgen.NewAuthority("HomeDrive mock CA")
		if err != nil {
			zapLogger.Fatal("failed to create CA", zap.Error(err))
		}
		server.TLSConfig, err = ca.ServerTLSConfig(tlsHosts(options.Address)...)
		if err != nil {
			zapLogger.Fatal("failed to issue server certificate", zap.Error(err))
		}
		if err := ca.WriteCertPEM(caFile); err != nil {
			zapLogger.Fatal("failed to write CA cert", zap.Error(err))
		}
		zapLogger.Info("CA certificate written", zap.String("path", caFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting server", zap.String("addr", options.Address), zap.Bool("tls", options.TLS))
	var err error
	if options.TLS {
		err = server.ListenAndServeTLS("", "")
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
	zapLogger.Info("server stopped", zap.Int("requests", backend.TotalCalls()))
}

// tlsHosts lists the names the server certificate is valid for.
func tlsHosts(addr string) []string {
	hosts := []string{"localhost", "127.0.0.1", "::1"}
	host, _, err := net.SplitHostPort(addr)
	if err == nil && host != "" && !slices.Contains(hosts, host) {
		hosts = append(hosts, host)
	}
	return hosts
}
