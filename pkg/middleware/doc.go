// Package middleware provides listener middleware for a dom.Document.
//
// This package includes:
//   - Structured logging of every listener invocation
//   - Prometheus metrics
//   - OpenTelemetry tracing
//   - Panic recovery
//
// Install them when creating the document. The first middleware is the
// outermost, so Recover usually comes last to sit closest to the listener:
//
//	doc := dom.NewDocument(body, dom.WithMiddleware(
//	    middleware.Logging(logger),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	    middleware.OpenTelemetry(),
//	    middleware.Recover(logger),
//	))
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - productpage_events_total: listener invocations by type, target and status
//   - productpage_event_duration_seconds: listener duration by type
//   - productpage_event_errors_total: failed invocations by type and error class
//   - productpage_notifications_total: notifications by level (see CountNotifications)
//
// # Context Propagation
//
// OpenTelemetry replaces the event's context with one carrying the span, so
// listeners that pass ev.Context() on (to a notifier, for example) continue
// the trace.
package middleware
