package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "no trace ID in a bare context")

	withTrace := SetTraceID(ctx, "")
	traceID := GetTraceID(withTrace)

	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "generated trace ID is a UUID")
	assert.Empty(t, GetTraceID(ctx), "original context is unchanged")
}

func TestSetTraceID_KeepsValidIncomingID(t *testing.T) {
	t.Parallel()

	incoming := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	ctx := SetTraceID(context.Background(), incoming)

	assert.Equal(t, incoming, GetTraceID(ctx))
}

func TestSetTraceID_ReplacesMalformedID(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background(), "<script>alert(1)</script>")

	traceID := GetTraceID(ctx)
	assert.NotEqual(t, "<script>alert(1)</script>", traceID)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err)
}

func TestGetTraceIDWithInvalidContextValue(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestNewTraceID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := NewTraceID()
		_, dup := seen[id]
		assert.False(t, dup, "trace IDs must not repeat")
		seen[id] = struct{}{}
	}
}
