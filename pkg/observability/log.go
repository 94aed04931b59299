package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("trace")}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.logger.Debug(msg, append(kv, "err", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, rows int, d time.Duration, err error) {
	h.done("loaded", err, "source", source, "rows", rows, "duration", d)
}

func (h *LogHooks) OnBuildStart(_ context.Context, plot, kind string) {
	h.logger.Debug("build", "plot", plot, "kind", kind)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, plot, kind string, traces int, d time.Duration, err error) {
	h.done("built", err, "plot", plot, "kind", kind, "traces", traces, "duration", d)
}

func (h *LogHooks) OnComposeComplete(_ context.Context, cells int, d time.Duration, err error) {
	h.done("composed", err, "cells", cells, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, name, format string) {
	h.logger.Debug("render", "plot", name, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, name, format string, size int, d time.Duration, err error) {
	h.done("rendered", err, "plot", name, "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
