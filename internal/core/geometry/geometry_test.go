package geometry

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, c := range cases {
		got := NormalizeAngle(c.in)
		assert.InDelta(t, c.want, got, eps, "NormalizeAngle(%v)", c.in)
		assert.Greater(t, got, -math.Pi)
		assert.LessOrEqual(t, got, math.Pi)
	}
}

func TestNormalizeAngleOddMultiplesOfPi(t *testing.T) {
	for _, a := range []float64{3 * math.Pi, -3 * math.Pi, 7 * math.Pi} {
		got := NormalizeAngle(a)
		assert.InDelta(t, math.Pi, math.Abs(got), 1e-9)
		assert.Greater(t, got, -math.Pi)
	}
}

func TestNormalizeAnglePropagatesNaN(t *testing.T) {
	assert.True(t, math.IsNaN(NormalizeAngle(math.NaN())))
	assert.True(t, math.IsNaN(NormalizeAngle(math.Inf(1))))
}

func TestFieldToRobotZeroHeadingIsTranslation(t *testing.T) {
	anchor := NewPose(Pt(1.5, -2), 0)
	got := anchor.FieldToRobot(Pt(3, 4))
	assert.Equal(t, Pt(1.5, 6), got)
}

func TestFieldToRobotRotation(t *testing.T) {
	// robot at (1,1) facing +Y: a point further along +Y is straight ahead
	anchor := NewPose(Pt(1, 1), math.Pi/2)
	got := anchor.FieldToRobot(Pt(1, 3))
	assert.InDelta(t, 2, got.X, eps)
	assert.InDelta(t, 0, got.Y, eps)

	// and a point at +X in the field is on the robot's right
	got = anchor.FieldToRobot(Pt(2, 1))
	assert.InDelta(t, 0, got.X, eps)
	assert.InDelta(t, -1, got.Y, eps)
}

func TestFieldToRobotPreservesDistance(t *testing.T) {
	anchor := NewPose(Pt(-0.7, 2.2), 2.1)
	a, b := Pt(3, -1), Pt(-4, 0.5)
	ra, rb := anchor.FieldToRobot(a), anchor.FieldToRobot(b)
	assert.InDelta(t, a.Sub(b).Norm(), ra.Sub(rb).Norm(), eps)
	assert.InDelta(t, a.Sub(anchor.Position).Norm(), ra.Norm(), eps)
}

func TestRoundTrip(t *testing.T) {
	anchors := []Pose2D{
		NewPose(Pt(0, 0), 0),
		NewPose(Pt(4.5, -3), math.Pi),
		NewPose(Pt(-1, 2), -2.7),
		NewPose(Pt(0.3, 0.3), 0.01),
	}
	points := []Point2D{Pt(0, 0), Pt(2, 0), Pt(-4.5, 3), Pt(1e3, -1e3)}
	for _, a := range anchors {
		for _, p := range points {
			back := RobotToField(a, FieldToRobot(a, p))
			assert.InDelta(t, p.X, back.X, 1e-6, "anchor %v point %v", a, p)
			assert.InDelta(t, p.Y, back.Y, 1e-6, "anchor %v point %v", a, p)
		}
	}
}

func TestFieldToRobotPropagatesNaN(t *testing.T) {
	anchor := NewPose(Pt(math.NaN(), 0), 0)
	got := anchor.FieldToRobot(Pt(1, 1))
	assert.True(t, math.IsNaN(got.X))
}

func TestBearing(t *testing.T) {
	assert.InDelta(t, 0, Bearing(Pt(2, 0)), eps)
	assert.InDelta(t, math.Pi/2, Bearing(Pt(0, 1)), eps)
	assert.InDelta(t, -math.Pi/2, Bearing(Pt(0, -1)), eps)
	assert.Equal(t, 0.0, Bearing(Pt(0, 0)))

	behind := Bearing(Pt(-1, 0))
	assert.InDelta(t, math.Pi, math.Abs(behind), eps)
	// atan2(-0, -1) is -π; the normalized bearing never is
	assert.Equal(t, math.Pi, Bearing(Pt(-1, math.Copysign(0, -1))))
}

func TestBearingRange(t *testing.T) {
	for i := 0; i < 360; i++ {
		a := float64(i) * math.Pi / 180
		b := Bearing(Pt(math.Cos(a), math.Sin(a)))
		require.Greater(t, b, -math.Pi)
		require.LessOrEqual(t, b, math.Pi)
		assert.InDelta(t, 0, AngleDiff(b, a), 1e-9)
	}
}

func TestPoseToRobot(t *testing.T) {
	robot := NewPose(Pt(1, 0), math.Pi/2)
	target := NewPose(Pt(1, 2), 0)
	rel := robot.PoseToRobot(target)
	assert.InDelta(t, 2, rel.Position.X, eps)
	assert.InDelta(t, 0, rel.Position.Y, eps)
	assert.InDelta(t, -math.Pi/2, rel.Heading, eps)
}

func TestPointJSON(t *testing.T) {
	raw, err := json.Marshal(NewPose(Pt(1.5, -2), 0.25))
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":{"x":1.5,"y":-2},"heading":0.25}`, string(raw))

	var p Point2D
	require.NoError(t, json.Unmarshal([]byte(`{"x":3,"y":4}`), &p))
	assert.Equal(t, Pt(3, 4), p)
	assert.Error(t, json.Unmarshal([]byte(`[3,4]`), &p))
}
