package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failures are
// logged at warn level. It implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

func (h *LogHooks) OnReadStart(_ context.Context, source string) {
	h.logger.Debug("read start", "source", source)
}

func (h *LogHooks) OnReadComplete(_ context.Context, source string, itemCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("read failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("read done", "source", source, "items", itemCount, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, source string, itemCount int) {
	h.logger.Debug("layout start", "source", source, "items", itemCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, source string, rowCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("layout done", "source", source, "rows", rowCount, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "took", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
