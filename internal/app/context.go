package app

import (
	"context"
)

type contextKey string

const (
	userIDKey         contextKey = "authenticated-user-id"
	rotationSourceKey contextKey = "rotation-trigger-source"
	managedHistoryKey contextKey = "managed-rotation-record"
)

// WithUserID attaches the authenticated user's ID to the context so services
// can associate persisted records with the caller.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func userIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// WithRotationSource overrides the trigger source stamped on rotation-history
// records. Unset contexts default to a manual rotation.
func WithRotationSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, rotationSourceKey, source)
}

func rotationSourceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(rotationSourceKey).(string); ok {
		return v
	}
	return ""
}

// WithManagedRotationRecord marks the context so the lifecycle service does
// not append its own rotation-history record; the caller owns the record and
// its status transitions.
func WithManagedRotationRecord(ctx context.Context) context.Context {
	return context.WithValue(ctx, managedHistoryKey, true)
}

func managedRotationRecord(ctx context.Context) bool {
	v, ok := ctx.Value(managedHistoryKey).(bool)
	return ok && v
}
