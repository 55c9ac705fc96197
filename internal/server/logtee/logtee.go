// Package logtee mirrors log records to a second handler, such as a debug log
// file kept next to the console output.
package logtee

import (
	"context"
	"errors"
	"log/slog"
)

// Handler writes every record to primary and copies records at or above min
// to secondary.
type Handler struct {
	primary   slog.Handler
	secondary slog.Handler
	min       slog.Level
}

// New returns a Handler fanning out to primary and secondary.
func New(primary, secondary slog.Handler, min slog.Level) *Handler {
	return &Handler{primary: primary, secondary: secondary, min: min}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.mirrors(ctx, level)
}

func (h *Handler) mirrors(ctx context.Context, level slog.Level) bool {
	return level >= h.min && h.secondary.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	if h.primary.Enabled(ctx, r.Level) {
		if err := h.primary.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	if h.mirrors(ctx, r.Level) {
		if err := h.secondary.Handle(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		primary:   h.primary.WithAttrs(attrs),
		secondary: h.secondary.WithAttrs(attrs),
		min:       h.min,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		primary:   h.primary.WithGroup(name),
		secondary: h.secondary.WithGroup(name),
		min:       h.min,
	}
}
