package motioncmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/myrjola/spermcourt/internal/motion"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) []byte {
	t.Helper()
	root := &cobra.Command{Use: "test"}
	root.AddGroup(Group)
	root.AddCommand(cmd)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{cmd.Name()}, args...))
	require.NoError(t, root.Execute())
	return out.Bytes()
}

func TestFrame(t *testing.T) {
	var frame motion.Frame
	require.NoError(t, json.Unmarshal(execute(t, Frame, "--seed", "7", "--count", "4", "--elapsed", "1.5"), &frame))
	require.Len(t, frame.Swimmers, 4)
	require.InDelta(t, 1.5, frame.Elapsed, 1e-9)

	want := motion.NewStage(motion.NewSeededSwarm(7, 4)).Frame(1.5, false)
	require.Equal(t, want.Swimmers, frame.Swimmers, "frames are reproducible from the seed")
}

func TestScene(t *testing.T) {
	var scene motion.Scene
	require.NoError(t, json.Unmarshal(execute(t, Scene, "--count", "2"), &scene))
	require.Len(t, scene.Swimmers, 2)
	require.Equal(t, "swimmer", scene.Swimmer.Name)
}
