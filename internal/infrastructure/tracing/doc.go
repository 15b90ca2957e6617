/*
Package tracing provides lightweight request tracing.

# Overview

Every HTTP request gets a span. Trace and span IDs are ULIDs from the id
package and are propagated through the X-Trace-ID and X-Span-ID headers, so
a client that sends its own trace ID sees it continued in the logs.

Completed spans are buffered (1000) and logged by a background collector;
a full buffer drops spans instead of slowing requests down.

# Usage

	tracer := tracing.New("filesystem-mcp", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Inside a handler
	traceID := tracing.TraceIDFrom(c.Request.Context())
*/
package tracing
