package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type shutdownFunc func(ctx context.Context) error

func (f shutdownFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

func TestShutdownMetrics(t *testing.T) {
	t.Parallel()

	t.Run("failure-logged", func(t *testing.T) {
		var (
			core, logs = observer.New(zap.DebugLevel)
			failure    = errors.New("scrape still running")
		)

		shutdownMetrics(shutdownFunc(func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return failure
		}), zap.New(core), time.Second)

		entries := logs.FilterMessage("metrics server shutdown failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, failure.Error(), entries[0].ContextMap()["error"])
	})

	t.Run("clean", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)

		shutdownMetrics(&http.Server{}, zap.New(core), time.Second)

		assert.Zero(t, logs.Len())
	})
}
