// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

// Command reiactl is a console client for the loss-modeling backend: it lists
// collections, uploads models and configurations, and triggers calculations.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
