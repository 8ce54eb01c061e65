package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/observability"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// Runtime holds the process logger and the telemetry exporters that must be flushed on exit.
type Runtime struct {
	Logger *logging.Logger

	pprof     *http.Server
	shutdowns []func(context.Context) error
}

// StartRuntime builds the process logger and starts telemetry. role is "api" or "worker".
func StartRuntime(cfg config.Config, role string) (*Runtime, error) {
	base := logging.NewJSON(cfg.LogLevel, "service", cfg.ServiceName, "env", cfg.AppEnv, "role", role)

	logger, flushLogs, err := observability.InitBetterStackLogger(cfg, base)
	if err != nil {
		return nil, fmt.Errorf("init betterstack: %w", err)
	}
	logging.SetDefault(logger)

	rt := &Runtime{Logger: logger}
	rt.shutdowns = append(rt.shutdowns, flushLogs)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	rt.shutdowns = append(rt.shutdowns, shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, role, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	rt.shutdowns = append(rt.shutdowns, func(context.Context) error { return stopProfiler() })

	rt.pprof = observability.StartPprofServer(cfg, logger)
	return rt, nil
}

// Shutdown runs in reverse start order so the log sink drains last.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error
	if err := observability.StopPprofServer(r.pprof, r.Logger, 5*time.Second); err != nil {
		errs = append(errs, err)
	}
	for i := len(r.shutdowns) - 1; i >= 0; i-- {
		if err := r.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	_ = r.Logger.Sync()
	return errors.Join(errs...)
}
