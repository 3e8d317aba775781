// Package api contains the HTTP delivery layer: request/response models,
// handlers for the triage, review, progress, and auth endpoints, and the
// mapping from service errors to HTTP status codes.
package api
