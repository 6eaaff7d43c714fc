package motion

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/soccerbrain/internal/core/geometry"
)

func TestWalkToPose(t *testing.T) {
	target := geometry.Pose2D{Position: geometry.Pt(0, 2), Heading: 3 * math.Pi / 2}
	cmd := WalkToPose(target, false, WalkModePath, Velocity{}, 5)

	assert.Equal(t, geometry.Pt(0, 2), cmd.Target.Position)
	assert.InDelta(t, -math.Pi/2, cmd.Target.Heading, 1e-9)
	assert.False(t, cmd.BypassAvoidance)
	assert.Equal(t, WalkModePath, cmd.Mode)
	assert.True(t, cmd.Velocity.IsDefault())
	assert.Equal(t, 5.0, cmd.Speed)
}

func TestWalkToPoseClampsSpeed(t *testing.T) {
	assert.Equal(t, MaxSpeed, WalkToPose(geometry.Pose2D{}, false, WalkModePath, Velocity{}, 42).Speed)
	assert.Equal(t, 0.0, WalkToPose(geometry.Pose2D{}, false, WalkModePath, Velocity{}, -1).Speed)
}

func TestTrackBall(t *testing.T) {
	robot := geometry.NewPose(geometry.Pt(1, 1), math.Pi/2)
	h := TrackBall(robot, geometry.Pt(0, 1))
	assert.Equal(t, HeadModeTrackBall, h.Mode)
	assert.InDelta(t, 0, h.Target.X, 1e-9)
	assert.InDelta(t, 1, h.Target.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, h.Yaw, 1e-9)
}

func TestTrackBallClampsYaw(t *testing.T) {
	h := TrackBall(geometry.Pose2D{}, geometry.Pt(-3, 0))
	assert.InDelta(t, MaxHeadYaw, h.Yaw, 1e-12)
	assert.InDelta(t, -3, h.Target.X, 1e-12)

	h = TrackBall(geometry.Pose2D{}, geometry.Pt(-3, -0.1))
	assert.InDelta(t, -MaxHeadYaw, h.Yaw, 1e-12)
}

func TestCombineHeadKeepsBody(t *testing.T) {
	body := WalkToPose(geometry.NewPose(geometry.Pt(1, 2), 0.5), false, WalkModePath, Velocity{}, 5)
	head := TrackBall(geometry.Pose2D{}, geometry.Pt(2, 0))

	cmd := body.CombineHead(head)
	assert.Equal(t, body, cmd.Body)
	assert.Equal(t, head, cmd.Head)

	again := cmd.CombineHead(LookAround())
	assert.Equal(t, body, again.Body)
	assert.Equal(t, HeadModeLookAround, again.Head.Mode)
	assert.Equal(t, head, cmd.Head, "CombineHead must not mutate its receiver")
}

func TestCombineOrderIrrelevant(t *testing.T) {
	head := TrackBall(geometry.Pose2D{}, geometry.Pt(2, 0))
	body := WalkToPose(geometry.NewPose(geometry.Pt(0, 2), 0), false, WalkModePath, Velocity{}, 5)
	a := body.CombineHead(head)

	head2 := TrackBall(geometry.Pose2D{}, geometry.Pt(2, 0))
	b := ActionCommand{}.CombineHead(head2)
	b.Body = WalkToPose(geometry.NewPose(geometry.Pt(0, 2), 0), false, WalkModePath, Velocity{}, 5)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint(t *testing.T) {
	a := Stand()
	b := Stand()
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Body.BypassAvoidance = true
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c := a.CombineHead(LookAround())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestFingerprintSignedZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	a := Stand()
	b := Stand()
	b.Body.Target.Heading = negZero
	b.Body.Velocity.Theta = negZero
	b.Head.Yaw = negZero
	require.Equal(t, a, b)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestCommandJSON(t *testing.T) {
	cmd := WalkToPose(geometry.NewPose(geometry.Pt(0, 2), 0), false, WalkModePath, Velocity{}, 5).
		CombineHead(LookForward())
	raw, err := json.Marshal(cmd)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mode":"path"`)
	assert.Contains(t, string(raw), `"mode":"look_forward"`)
	assert.Contains(t, string(raw), `"position":{"x":0,"y":2}`)

	var m WalkMode
	require.NoError(t, m.UnmarshalText([]byte("dribble")))
	assert.Equal(t, WalkModeDribble, m)
	assert.Error(t, m.UnmarshalText([]byte("run")))
}
