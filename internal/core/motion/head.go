package motion

import (
	"fmt"
	"math"

	"github.com/zeusync/soccerbrain/internal/core/geometry"
)

type HeadMode uint8

const (
	HeadModeLookForward HeadMode = iota
	HeadModeTrackBall
	HeadModeLookAround
)

var headModeNames = [...]string{"look_forward", "track_ball", "look_around"}

func (m HeadMode) String() string {
	if int(m) < len(headModeNames) {
		return headModeNames[m]
	}
	return fmt.Sprintf("HeadMode(%d)", m)
}

func (m HeadMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// MaxHeadYaw is the mechanical yaw limit of the head joint, in radians.
const MaxHeadYaw = 119.5 * math.Pi / 180

// HeadCommand tells the head controller where to look.
type HeadCommand struct {
	Mode HeadMode `json:"mode"`
	// Target is the robot-frame point to keep in view, zero unless tracking.
	Target geometry.Point2D `json:"target"`
	// Yaw is the requested head yaw relative to the torso.
	Yaw float64 `json:"yaw"`
}

// TrackBall keeps the ball in view. It derives the robot-relative ball
// position from the robot pose and the field-frame ball on its own and clamps
// the yaw to what the neck can reach.
func TrackBall(robot geometry.Pose2D, ball geometry.Point2D) HeadCommand {
	rel := robot.FieldToRobot(ball)
	yaw := geometry.Bearing(rel)
	return HeadCommand{
		Mode:   HeadModeTrackBall,
		Target: rel,
		Yaw:    math.Max(-MaxHeadYaw, math.Min(MaxHeadYaw, yaw)),
	}
}

func LookForward() HeadCommand { return HeadCommand{Mode: HeadModeLookForward} }

// LookAround hands the head to the controller's search sweep.
func LookAround() HeadCommand { return HeadCommand{Mode: HeadModeLookAround} }
