// Package net carries per request identity (request id, API client) on the
// context and shapes the envelope middleware writes
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type clientKey struct{}

// WithRequest stores the request id where chi's GetReqID also finds it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// WithClient stores the authenticated API client
func WithClient(ctx context.Context, clientID string) context.Context {
	if clientID == "" {
		return ctx
	}
	return context.WithValue(ctx, clientKey{}, clientID)
}

// RequestID returns the request id, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ClientID returns the authenticated client, or ""
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientKey{}).(string)
	return id
}
