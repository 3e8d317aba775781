// Package events defines the notifications the concept lifecycle engine
// publishes to its collaborators (mastery, daily-goal completion, quota
// rejections) and a synchronous in-memory emitter for dispatching them.
// Events are one-way: handlers observe state changes, they never drive them.
package events
