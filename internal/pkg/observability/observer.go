package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

// Observer receives the defined checkpoints of a dashboard request.
type Observer interface {
	ScopeResolved(ctx context.Context, a actor.Actor, size int, err error)
	WindowBuilt(ctx context.Context, w window.TimeWindow, recovered bool)
	BundleComputed(ctx context.Context, key string, view string, elapsed time.Duration, err error)
}

type nopObserver struct{}

// Nop discards every event.
func Nop() Observer { return nopObserver{} }

func (nopObserver) ScopeResolved(context.Context, actor.Actor, int, error)               {}
func (nopObserver) WindowBuilt(context.Context, window.TimeWindow, bool)                 {}
func (nopObserver) BundleComputed(context.Context, string, string, time.Duration, error) {}

type multiObserver []Observer

// Multi forwards every event to each observer in order.
func Multi(observers ...Observer) Observer {
	return multiObserver(observers)
}

func (m multiObserver) ScopeResolved(ctx context.Context, a actor.Actor, size int, err error) {
	for _, o := range m {
		o.ScopeResolved(ctx, a, size, err)
	}
}

func (m multiObserver) WindowBuilt(ctx context.Context, w window.TimeWindow, recovered bool) {
	for _, o := range m {
		o.WindowBuilt(ctx, w, recovered)
	}
}

func (m multiObserver) BundleComputed(ctx context.Context, key string, view string, elapsed time.Duration, err error) {
	for _, o := range m {
		o.BundleComputed(ctx, key, view, elapsed, err)
	}
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes events to logger: debug on success, warn on failure
// or when a period had to be defaulted.
func NewLogObserver(logger *slog.Logger) Observer {
	return &logObserver{logger: logger.With(slog.String("component", "analytics"))}
}

func (o *logObserver) ScopeResolved(ctx context.Context, a actor.Actor, size int, err error) {
	if err != nil {
		o.logger.WarnContext(ctx, "scope resolution failed",
			slog.String("actor_id", a.ID),
			slog.String("role", string(a.Role)),
			slog.Any("error", err),
		)
		return
	}
	o.logger.DebugContext(ctx, "scope resolved",
		slog.String("actor_id", a.ID),
		slog.String("role", string(a.Role)),
		slog.Int("size", size),
	)
}

func (o *logObserver) WindowBuilt(ctx context.Context, w window.TimeWindow, recovered bool) {
	level := slog.LevelDebug
	if recovered {
		level = slog.LevelWarn
	}
	o.logger.Log(ctx, level, "window built",
		slog.String("period", string(w.Period)),
		slog.Time("start", w.Start),
		slog.Time("end", w.End),
		slog.Bool("recovered", recovered),
	)
}

func (o *logObserver) BundleComputed(ctx context.Context, key string, view string, elapsed time.Duration, err error) {
	if err != nil {
		o.logger.WarnContext(ctx, "bundle failed",
			slog.String("key", key),
			slog.String("view", view),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err),
		)
		return
	}
	o.logger.DebugContext(ctx, "bundle computed",
		slog.String("key", key),
		slog.String("view", view),
		slog.Duration("elapsed", elapsed),
	)
}
