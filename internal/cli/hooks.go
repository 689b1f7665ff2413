package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/observability"
)

// logHooks reports grid, cache and HTTP events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

// installHooks registers logHooks for every event category.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetGridHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnPlace(x, y int, placed belt.Belt) {
	h.logger.Debug("place", "x", x, "y", y, "belt", placed, "turn", placed.Turn())
}

func (h logHooks) OnAdjust(x, y int, before, after belt.Belt) {
	h.logger.Debug("adjust front", "x", x, "y", y, "from", before, "to", after)
}

func (h logHooks) OnClear(x, y int, had bool) {
	h.logger.Debug("clear", "x", x, "y", y, "removed", had)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "format", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "format", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "format", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("served", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}

var (
	_ observability.GridHooks  = logHooks{}
	_ observability.CacheHooks = logHooks{}
	_ observability.HTTPHooks  = logHooks{}
)
