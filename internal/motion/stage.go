package motion

import "math"

const tipBendAmplitude = 0.2

func tipBend(phase float64) float64 {
	return tipBendAmplitude * math.Sin(phase)
}

// Frame carries every pose the renderer needs for one display refresh.
type Frame struct {
	Elapsed  float64 `json:"elapsed"`
	Swimmers []Pose  `json:"swimmers"`
	Judge    Pose    `json:"judge"`
	// TipBends is the fixed per-swimmer bend of the last tail segment, indexed like Swimmers.
	TipBends []float64 `json:"tipBends,omitempty"`
}

// Stage pairs a swarm with its scene description and assembles frames.
type Stage struct {
	swarm Swarm
	scene Scene
	bends []float64
}

// NewStage creates a stage for swarm.
func NewStage(swarm Swarm) *Stage {
	bends := make([]float64, len(swarm))
	for i, p := range swarm {
		bends[i] = tipBend(p.Phase())
	}
	return &Stage{swarm: swarm, scene: NewScene(swarm), bends: bends}
}

// Scene returns the declarative scene description.
func (s *Stage) Scene() Scene {
	return s.scene
}

// Swarm returns the stage's particles.
func (s *Stage) Swarm() Swarm {
	return s.swarm
}

// Frame evaluates all poses at elapsed seconds. shaking is the judge's shake flag owned by the game.
func (s *Stage) Frame(elapsed float64, shaking bool) Frame {
	return Frame{
		Elapsed:  elapsed,
		Swimmers: s.swarm.PosesAt(elapsed),
		Judge:    JudgePose(elapsed, shaking),
		TipBends: s.bends,
	}
}
