package trace

import "context"

// state is what a context carries for tracing: the tracer and the span new
// spans nest under. Both live under one key so a lookup is a single Value
// walk.
type state struct {
	tracer Tracer
	span   uint64
}

type ctxKey struct{}

func load(ctx context.Context) state {
	if ctx != nil {
		if s, ok := ctx.Value(ctxKey{}).(state); ok {
			return s
		}
	}
	return state{tracer: Nop}
}

// FromContext returns the context's tracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	return load(ctx).tracer
}

// WithTracer attaches t, keeping the current span.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	s := load(ctx)
	s.tracer = t
	return context.WithValue(ctx, ctxKey{}, s)
}

// SpanContext identifies the active span; zero means none.
type SpanContext struct {
	SpanID uint64
}

func CurrentSpan(ctx context.Context) SpanContext {
	return SpanContext{SpanID: load(ctx).span}
}

// WithSpanContext makes sc the parent of spans begun from the returned context.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	s := load(ctx)
	s.span = sc.SpanID
	return context.WithValue(ctx, ctxKey{}, s)
}
