/*
Package monitoring provides Prometheus metrics for the filesystem server.

# Overview

Each Metrics value owns a private prometheus.Registry, so tests and
embedded servers never collide on global registration.

# Metrics

- HTTP requests: count, latency, request and response size per route
- Tool calls: count and latency per tool, failures per tool and kind
- MCP sessions: live gauge, created and expired counters
- Uptime, plus the standard Go runtime and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	provider := filesystem.NewProvider(ops, logger).WithMetrics(metrics)
*/
package monitoring
