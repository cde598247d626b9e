// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"goa.design/clue/debug"
	goahttp "goa.design/goa/v3/http"

	"github.com/reia-project/reia-console/internal/infrastructure/mock"
	"github.com/reia-project/reia-console/internal/middleware"
)

// handleHTTPServer configures and starts the HTTP server on host. It shuts
// the server down once ctx is cancelled.
func handleHTTPServer(ctx context.Context, host, prefix string, backend *mock.Backend, wg *sync.WaitGroup, errc chan error, dbg bool) {
	var mux goahttp.Muxer
	{
		mux = goahttp.NewMuxer()
		if dbg {
			// Mount pprof handlers for memory profiling under /debug/pprof.
			debug.MountPprofHandlers(debug.Adapt(mux))
			// Mount /debug endpoint to enable or disable debug logs at runtime.
			debug.MountDebugLogEnabler(debug.Adapt(mux))
		}
	}

	backend.Mount(mux, prefix)

	var handler http.Handler = mux

	handler = middleware.AccessLogMiddleware()(handler)
	// RequestID wraps the access log so every line carries the id
	handler = middleware.RequestIDMiddleware()(handler)

	if dbg {
		// Log request and response bodies if debug logs are enabled.
		handler = debug.HTTP()(handler)
	}

	srv := &http.Server{Addr: host, Handler: handler, ReadHeaderTimeout: time.Second * 60}

	(*wg).Add(1)
	go func() {
		defer (*wg).Done()

		go func() {
			slog.InfoContext(ctx, "HTTP server listening", "host", host, "prefix", prefix)
			errc <- srv.ListenAndServe()
		}()

		<-ctx.Done()
		slog.InfoContext(ctx, "shutting down HTTP server", "host", host)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to shutdown HTTP server", "error", err)
		}
	}()
}
