package motion

import (
	"math"
	"math/rand/v2"
)

// Swimming figure frequencies and amplitudes.
const (
	orbitFrequency = 0.3
	bobFrequency   = 0.5
	tailFrequency  = 3.0

	yawAmplitude       = 0.5
	rollAmplitude      = 0.3
	tailPitchAmplitude = 0.4
	tailRollAmplitude  = 0.3
)

// Swarm seeding ranges.
const (
	DefaultSwarmSize = 25

	spreadX = 20.0
	spreadY = 15.0
	spreadZ = 10.0
	// Pushes the swarm behind the judge.
	depthShift = -5.0

	minSpeed     = 0.5
	speedRange   = 1.0
	minAmplitude = 2.0
	ampRange     = 3.0
)

// Particle is one swimming figure of the background. Its parameters are fixed at creation.
type Particle struct {
	base      Vec3
	phase     float64
	speed     float64
	amplitude float64
}

// NewParticle creates a particle with the given base position, phase offset, speed multiplier and amplitude.
func NewParticle(base Vec3, phase, speed, amplitude float64) Particle {
	return Particle{base: base, phase: phase, speed: speed, amplitude: amplitude}
}

// Base returns the centre of the particle's swim path.
func (p Particle) Base() Vec3 {
	return p.base
}

func (p Particle) Phase() float64 {
	return p.phase
}

func (p Particle) Speed() float64 {
	return p.speed
}

func (p Particle) Amplitude() float64 {
	return p.amplitude
}

// PoseAt returns the particle's pose elapsed seconds after the background started.
//
// The swim path is a figure-eight around the base position whose heading follows the path.
func (p Particle) PoseAt(elapsed float64) Pose {
	t := elapsed*p.speed + p.phase
	a := p.amplitude

	offset := Vec3{
		X: a * math.Sin(orbitFrequency*t),
		Y: 0.5 * a * math.Sin(bobFrequency*t), //nolint:mnd // vertical motion is half as wide
		Z: a * math.Cos(orbitFrequency*t),
	}
	return Pose{
		Position: p.base.Add(offset),
		Offset:   offset,
		Rotation: Vec3{
			Y: yawAmplitude * math.Sin(orbitFrequency*t),
			Z: rollAmplitude * math.Cos(bobFrequency*t),
		},
		Tail: Vec3{
			X: tailPitchAmplitude * math.Sin(tailFrequency*t),
			Z: tailRollAmplitude * math.Cos(tailFrequency*t),
		},
	}
}

// Swarm is the fixed population of background swimmers.
type Swarm []Particle

// NewSwarm seeds count particles from rng. The same generator state always yields the same swarm.
func NewSwarm(rng *rand.Rand, count int) Swarm {
	swarm := make(Swarm, count)
	for i := range swarm {
		base := Vec3{
			X: (rng.Float64() - 0.5) * spreadX,
			Y: (rng.Float64() - 0.5) * spreadY,
			Z: (rng.Float64()-0.5)*spreadZ + depthShift,
		}
		speed := minSpeed + rng.Float64()*speedRange
		amplitude := minAmplitude + rng.Float64()*ampRange
		phase := rng.Float64() * 2 * math.Pi
		swarm[i] = NewParticle(base, phase, speed, amplitude)
	}
	return swarm
}

// NewSeededSwarm is NewSwarm with a PCG generator seeded from seed.
func NewSeededSwarm(seed uint64, count int) Swarm {
	return NewSwarm(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), count) //nolint:gosec // cosmetic only
}

// PosesAt evaluates every particle at elapsed. The result has one pose per particle, in swarm order.
func (s Swarm) PosesAt(elapsed float64) []Pose {
	poses := make([]Pose, len(s))
	for i, p := range s {
		poses[i] = p.PoseAt(elapsed)
	}
	return poses
}
