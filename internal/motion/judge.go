package motion

import "math"

const (
	judgeBobAmplitude  = 0.1
	judgeTailFrequency = 2.0
	judgeTailPitch     = 0.3
	judgeTailRoll      = 0.2
	shakeFrequency     = 50.0
	shakeAmplitude     = 0.3
)

// JudgePose returns the pose of the foreground judge character.
//
// The judge idles with a slow vertical bob. While shaking, the roll axis oscillates rapidly; otherwise it rests at zero.
func JudgePose(elapsed float64, shaking bool) Pose {
	offset := Vec3{Y: judgeBobAmplitude * math.Sin(elapsed)}
	pose := Pose{
		Position: offset,
		Offset:   offset,
		Tail: Vec3{
			X: judgeTailPitch * math.Sin(judgeTailFrequency*elapsed),
			Z: judgeTailRoll * math.Cos(judgeTailFrequency*elapsed),
		},
	}
	if shaking {
		pose.Rotation.Z = shakeAmplitude * math.Sin(shakeFrequency*elapsed)
	}
	return pose
}
