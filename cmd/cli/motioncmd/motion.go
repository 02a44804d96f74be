// Package motioncmd prints motion frames and the scene description as JSON, e.g. for checking a renderer.
package motioncmd

import (
	"encoding/json"
	"io"

	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/motion"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "motion",
	Title: "Motion",
}

func init() {
	for _, cmd := range []*cobra.Command{Frame, Scene} {
		cmd.Flags().Uint64("seed", 1, "swarm seed")
		cmd.Flags().Int("count", motion.DefaultSwarmSize, "number of swimmers")
	}
	Frame.Flags().Float64("elapsed", 0, "seconds since the animation started")
	Frame.Flags().Bool("shaking", false, "whether the judge shakes")
}

var Frame = &cobra.Command{
	Use:     "frame",
	GroupID: "motion",
	Short:   "Print the poses of one frame",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stage, err := stageFromFlags(cmd)
		if err != nil {
			return err
		}
		elapsed, err := cmd.Flags().GetFloat64("elapsed")
		if err != nil {
			return errors.Wrap(err, "elapsed flag")
		}
		shaking, err := cmd.Flags().GetBool("shaking")
		if err != nil {
			return errors.Wrap(err, "shaking flag")
		}
		return writeJSON(cmd.OutOrStdout(), stage.Frame(elapsed, shaking))
	},
}

var Scene = &cobra.Command{
	Use:     "scene",
	GroupID: "motion",
	Short:   "Print the scene description",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stage, err := stageFromFlags(cmd)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), stage.Scene())
	},
}

func stageFromFlags(cmd *cobra.Command) (*motion.Stage, error) {
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return nil, errors.Wrap(err, "seed flag")
	}
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return nil, errors.Wrap(err, "count flag")
	}
	if count < 0 {
		return nil, errors.New("count must not be negative")
	}
	return motion.NewStage(motion.NewSeededSwarm(seed, count)), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode JSON")
	}
	return nil
}
