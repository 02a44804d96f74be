package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/myrjola/spermcourt/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	ctx := logging.WithAttrs(context.Background(), slog.String("room_id", "r1"))
	ctx = logging.WithAttrs(ctx, slog.Int("case", 3))
	logger.With(slog.String("source", "test")).LogAttrs(ctx, slog.LevelInfo, "objection raised")

	out := buf.String()
	require.Contains(t, out, "room_id=r1")
	require.Contains(t, out, "case=3")
	require.Contains(t, out, "source=test")

	buf.Reset()
	logger.LogAttrs(context.Background(), slog.LevelInfo, "no context")
	require.NotContains(t, buf.String(), "room_id")
}

func TestWithAttrsDoesNotAlias(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	base := logging.WithAttrs(context.Background(), slog.String("a", "1"))
	left := logging.WithAttrs(base, slog.String("b", "left"))
	_ = logging.WithAttrs(base, slog.String("b", "right"))

	logger.InfoContext(left, "check")
	require.Contains(t, buf.String(), "b=left")
	require.NotContains(t, buf.String(), "b=right")
}
