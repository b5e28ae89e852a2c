package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls a request-scoped attribute out of ctx.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type attrsKey struct{}

// WithContextAttrs returns a copy of ctx carrying attrs. Loggers built by
// this package add them to every record logged with that context, so an
// action only needs to name itself once.
func WithContextAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	prev, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(append(merged, prev...), attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// ContextAttrs returns the attributes stored by WithContextAttrs.
func ContextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

// contextHandler adds context attributes and extracted attributes to each
// record before passing it on to every sink enabled for its level.
type contextHandler struct {
	sinks      []slog.Handler
	extractors []ContextExtractor
}

// NewHandler returns a handler fanning records out to sinks. Nil
// extractors and nil sinks are ignored.
func NewHandler(sinks []slog.Handler, extractors ...ContextExtractor) slog.Handler {
	h := &contextHandler{}
	for _, s := range sinks {
		if s != nil {
			h.sinks = append(h.sinks, s)
		}
	}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	return h
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	rec.AddAttrs(ContextAttrs(ctx)...)
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}

	last := -1
	for i, s := range h.sinks {
		if s.Enabled(ctx, rec.Level) {
			last = i
		}
	}
	for i, s := range h.sinks[:last+1] {
		if !s.Enabled(ctx, rec.Level) {
			continue
		}
		r := rec
		if i != last {
			r = rec.Clone()
		}
		if err := s.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *contextHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = fn(s)
	}
	return &contextHandler{sinks: sinks, extractors: h.extractors}
}
