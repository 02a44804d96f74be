package main

import (
	"context"
	"maps"
	"testing"

	"github.com/myrjola/spermcourt/internal/e2etest"
	"github.com/myrjola/spermcourt/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

// fastEnv makes every timed effect of the trial expire before the next request arrives.
var fastEnv = map[string]string{
	"COURT_SHAKE_DURATION":    "1ns",
	"COURT_BANNER_DURATION":   "1ns",
	"COURT_REACTION_DURATION": "1ns",
	"COURT_TOAST_DURATION":    "1ns",
}

func testLookupEnv(overrides map[string]string) func(string) (string, bool) {
	env := map[string]string{
		"COURT_ADDR":       "localhost:0",
		"COURT_SQLITE_URL": ":memory:",
		"COURT_SWARM_SEED": "1",
		"COURT_FRAME_RATE": "100",
	}
	maps.Copy(env, overrides)
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// startTestServer starts the server with the given environment overrides. It stops when the test ends.
func startTestServer(t *testing.T, overrides map[string]string) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, testhelpers.NewWriter(t), testLookupEnv(overrides), run)
	require.NoError(t, err)
	return server
}
