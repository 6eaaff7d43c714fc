package motion

import (
	"fmt"
	"math"

	"github.com/zeusync/soccerbrain/internal/core/geometry"
)

// WalkMode selects the locomotion strategy used to reach a target pose.
type WalkMode uint8

const (
	// WalkModePath follows a planned path to the target pose.
	WalkModePath WalkMode = iota
	// WalkModeDirect walks straight at the target without planning.
	WalkModeDirect
	// WalkModeDribble walks along a path while keeping the ball in front.
	WalkModeDribble
)

var walkModeNames = [...]string{"path", "direct", "dribble"}

func (m WalkMode) String() string {
	if int(m) < len(walkModeNames) {
		return walkModeNames[m]
	}
	return fmt.Sprintf("WalkMode(%d)", m)
}

func (m WalkMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *WalkMode) UnmarshalText(b []byte) error {
	for i, n := range walkModeNames {
		if n == string(b) {
			*m = WalkMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown walk mode: %s", b)
}

// MaxSpeed is the top of the speed level scale. The locomotion layer scales its
// maximum walking velocity by Speed/MaxSpeed, so Speed caps the walk, it is
// not a target the walk must reach.
const MaxSpeed = 10.0

// Velocity is a velocity hint in the robot frame. The zero value means "let
// the planner choose the speed profile", it never means stop.
type Velocity struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

func (v Velocity) IsDefault() bool { return v == Velocity{} }

// LocomotionCommand is what the walking engine consumes for one cycle.
type LocomotionCommand struct {
	// Target is expressed in the robot frame.
	Target geometry.Pose2D `json:"target"`
	// BypassAvoidance requests the obstacle-avoidance-only shortcut instead of
	// full path following.
	BypassAvoidance bool     `json:"bypass_avoidance"`
	Mode            WalkMode `json:"mode"`
	Velocity        Velocity `json:"velocity"`
	Speed           float64  `json:"speed"`
}

// WalkToPose builds a locomotion command towards target. It cannot fail;
// whether the pose is reachable is the walking engine's business. A target
// with zero translation and a nonzero heading means rotate in place.
func WalkToPose(target geometry.Pose2D, bypassAvoidance bool, mode WalkMode, velocity Velocity, speed float64) LocomotionCommand {
	return LocomotionCommand{
		Target:          geometry.NewPose(target.Position, target.Heading),
		BypassAvoidance: bypassAvoidance,
		Mode:            mode,
		Velocity:        velocity,
		Speed:           clampSpeed(speed),
	}
}

func clampSpeed(s float64) float64 {
	return math.Min(math.Max(s, 0), MaxSpeed)
}
