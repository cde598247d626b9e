// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/reia-project/reia-console/internal/catalog"
	"github.com/reia-project/reia-console/internal/infrastructure/mock"
	logging "github.com/reia-project/reia-console/pkg/log"
)

const (
	defaultPort   = "5000"
	defaultPrefix = "/api/v1"
	// gracefulShutdownSeconds bounds how long in-flight uploads may take
	// to finish once a signal is received.
	gracefulShutdownSeconds = 25
)

func main() {
	var (
		dbgF        = flag.Bool("d", false, "enable debug logging")
		port        = flag.String("p", defaultPort, "listen port")
		bind        = flag.String("bind", "*", "interface to bind on")
		prefix      = flag.String("prefix", defaultPrefix, "path prefix the API is mounted under")
		catalogPath = flag.String("catalog", "", "resource catalog file (YAML) overriding the built-in resources")
		seedPath    = flag.String("seed", "", "file (YAML or JSON) with records to preload, keyed by resource name")
	)
	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	logging.InitStructureLogConfig(os.Stderr, *dbgF)

	ctx := context.Background()
	slog.InfoContext(ctx, "Starting mock loss-modeling backend",
		"bind", *bind,
		"http-port", *port,
		"prefix", *prefix,
		"graceful-shutdown-seconds", gracefulShutdownSeconds,
	)

	resources := catalog.Default()
	if *catalogPath != "" {
		var err error
		resources, err = catalog.Load(*catalogPath)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load catalog", "path", *catalogPath, "error", err)
			os.Exit(1)
		}
	}

	backend := mock.NewBackend(resources)
	if *seedPath != "" {
		if err := seedBackend(backend, *seedPath); err != nil {
			slog.ErrorContext(ctx, "failed to seed backend", "path", *seedPath, "error", err)
			os.Exit(1)
		}
	}

	// Create channel used by both the signal handler and server goroutines
	// to notify the main goroutine when to stop the server.
	errc := make(chan error)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)

	addr := ":" + *port
	if *bind != "*" {
		addr = *bind + ":" + *port
	}

	handleHTTPServer(ctx, addr, *prefix, backend, &wg, errc, *dbgF)

	slog.InfoContext(ctx, "received shutdown signal, stopping servers",
		"signal", <-errc,
	)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.InfoContext(ctx, "graceful shutdown completed")
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "graceful shutdown timed out")
	}

	slog.InfoContext(ctx, "exited")
}
