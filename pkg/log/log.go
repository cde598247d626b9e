// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
)

type ctxKey string

const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelInfo

	debug = "debug"
	warn  = "warn"
	info  = "info"
	errs  = "error"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		// copy so sibling contexts never share a backing array
		attrs := make([]slog.Attr, 0, len(v)+1)
		attrs = append(attrs, v...)
		attrs = append(attrs, attr)
		return context.WithValue(parent, slogFields, attrs)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// levelFromEnv maps LOG_LEVEL to a slog level.
func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case debug:
		return slog.LevelDebug
	case warn:
		return slog.LevelWarn
	case info:
		return slog.LevelInfo
	case errs:
		return slog.LevelError
	default:
		return logLevelDefault
	}
}

// InitStructureLogConfig sets the structured log behavior. Records go to w
// (stderr when nil) so command output on stdout stays machine readable.
// forceDebug overrides LOG_LEVEL.
func InitStructureLogConfig(w io.Writer, forceDebug bool) {
	if w == nil {
		w = os.Stderr
	}

	logOptions := &slog.HandlerOptions{
		Level: levelFromEnv(),
	}
	if forceDebug {
		logOptions.Level = slog.LevelDebug
	}

	addSource := os.Getenv("LOG_ADD_SOURCE")
	if addSource == "true" || addSource == "false" {
		logOptions.AddSource = addSource == "true"
	}

	h := slog.NewJSONHandler(w, logOptions)
	log.SetFlags(log.Llongfile)
	slog.SetDefault(slog.New(contextHandler{h}))

	slog.Debug("log config",
		"level", logOptions.Level,
		"add_source", logOptions.AddSource,
	)
}
