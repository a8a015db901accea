package auth

import (
	"context"
	"testing"
)

func TestUserIDContextRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), 7)

	id, ok := UserIDFromContext(ctx)
	if !ok || id != 7 {
		t.Errorf("expected (7, true), got (%d, %v)", id, ok)
	}
}

func TestUserIDFromContext_Absent(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Error("expected no user ID in a fresh context")
	}
}

func TestUserIDFromContext_IgnoresForeignKeys(t *testing.T) {
	// A value stored under another package's key must not be mistaken for an
	// authenticated user.
	type foreignKey string
	ctx := context.WithValue(context.Background(), foreignKey("user_id"), int64(9))
	if _, ok := UserIDFromContext(ctx); ok {
		t.Error("expected typed key to reject string-keyed value")
	}
}
