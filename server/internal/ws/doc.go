// Package ws implements the WebSocket hub for bpcalc-server.
//
// Hub manages a set of connected clients and pushes the current telemetry
// summary to all of them on a configurable interval (server.stream.interval,
// default 5s).
//
// New(source, interval) creates a Hub.
// Hub.Run(ctx) starts the broadcast ticker; it blocks until ctx is cancelled,
// then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the current
// summary immediately on connect, then streams updates on each tick.
//
// Message format sent to clients:
//
//	{
//	  "event": "summary",
//	  "data":  { "assessed": 12, "invalid": 1, "categories": {...}, ... }
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The hub is mounted at /ws/stream by the server.
package ws
