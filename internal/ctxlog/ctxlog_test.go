package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	ctx = With(ctx, "layout", "home")
	FromContext(ctx).Info("Rendered.")
	assert.Contains(t, buf.String(), "layout=home")
}

func TestFromContext_MissingLoggerPanics(t *testing.T) {
	assert.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
		FromContext(context.Background())
	})
}

func TestDiscard(t *testing.T) {
	ctx := Discard(context.Background())
	assert.NotPanics(t, func() { FromContext(ctx).Error("dropped") })
}
