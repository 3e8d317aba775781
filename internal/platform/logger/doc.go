// Package logger provides structured logging setup and context propagation
// for the application. All components log through log/slog with a shared
// JSON handler; request middleware stores a request-scoped logger in the
// context so store and service layers can correlate log lines by trace ID.
package logger
