package utils

import (
	"context"
	"time"
)

type contextKey string

const (
	LocationKey contextKey = "location"
)

// WithLocation stores the resolved client timezone in the request context.
func WithLocation(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, LocationKey, loc)
}

// LocationFromContext returns the client timezone resolved for this request,
// or UTC when none was set.
func LocationFromContext(ctx context.Context) *time.Location {
	locVal := ctx.Value(LocationKey)
	if locVal == nil {
		return time.UTC
	}

	loc, ok := locVal.(*time.Location)
	if !ok || loc == nil {
		return time.UTC
	}

	return loc
}
