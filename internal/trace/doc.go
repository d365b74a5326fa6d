// Package trace records spans of lyread's work: the driver command, the
// passes over a file (lex, read, build) and, at debug level, single items.
//
// Enable it from the command line:
//
//	lyread read --trace=- --trace-level=detail score.ly
//
// Tracers are carried through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "read", 0)
//	defer span.End("")
package trace
