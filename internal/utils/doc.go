// Package utils holds the HTTP plumbing shared by the LLM providers:
// [DoPostSync] for JSON round-trips, [DoPostStream] with [SSEScanner] for
// Server-Sent Events, and a few string helpers for log previews.
package utils
