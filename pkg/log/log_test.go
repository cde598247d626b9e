// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCtxAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(contextHandler{slog.NewJSONHandler(&buf, nil)})

	ctx := AppendCtx(context.Background(), slog.String("resource", "exposure"))
	ctx = AppendCtx(ctx, slog.String("X-REQUEST-ID", "abc"))

	logger.InfoContext(ctx, "fetching collection")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "exposure", record["resource"])
	assert.Equal(t, "abc", record["X-REQUEST-ID"])
}

func TestAppendCtxDoesNotLeakBetweenSiblings(t *testing.T) {
	parent := AppendCtx(context.Background(), slog.String("a", "1"))
	left := AppendCtx(parent, slog.String("b", "2"))
	right := AppendCtx(parent, slog.String("c", "3"))

	leftAttrs := left.Value(slogFields).([]slog.Attr)
	rightAttrs := right.Value(slogFields).([]slog.Attr)

	assert.Len(t, leftAttrs, 2)
	assert.Len(t, rightAttrs, 2)
	assert.Equal(t, "b", leftAttrs[1].Key)
	assert.Equal(t, "c", rightAttrs[1].Key)
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env      string
		expected slog.Level
	}{
		{env: "debug", expected: slog.LevelDebug},
		{env: "warn", expected: slog.LevelWarn},
		{env: "error", expected: slog.LevelError},
		{env: "", expected: slog.LevelInfo},
		{env: "verbose", expected: slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.env)
			assert.Equal(t, tc.expected, levelFromEnv())
		})
	}
}
