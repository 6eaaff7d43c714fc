package geometry

import "fmt"

// Pose2D is a position plus a facing direction. Heading is in radians and kept
// in (-π, π] by NewPose.
type Pose2D struct {
	Position Point2D `json:"position" yaml:"position"`
	Heading  float64 `json:"heading" yaml:"heading"`
}

// NewPose builds a pose with a normalized heading.
func NewPose(position Point2D, heading float64) Pose2D {
	return Pose2D{Position: position, Heading: NormalizeAngle(heading)}
}

func (p Pose2D) String() string {
	return fmt.Sprintf("(%v, %.4f)", p.Position, p.Heading)
}

// FieldToRobot expresses the field-frame point q in the frame anchored at
// anchor: translate by -anchor.Position, then rotate by -anchor.Heading.
// Distances are preserved and a zero heading is a pure translation.
func (p Pose2D) FieldToRobot(q Point2D) Point2D {
	d := q.Sub(p.Position)
	if p.Heading == 0 {
		return d
	}
	return d.Rotate(-p.Heading)
}

// RobotToField is the inverse of FieldToRobot.
func (p Pose2D) RobotToField(q Point2D) Point2D {
	if p.Heading == 0 {
		return q.Add(p.Position)
	}
	return q.Rotate(p.Heading).Add(p.Position)
}

// PoseToRobot expresses a whole field-frame pose relative to p.
func (p Pose2D) PoseToRobot(target Pose2D) Pose2D {
	return NewPose(p.FieldToRobot(target.Position), target.Heading-p.Heading)
}

// FieldToRobot is the free-function form of Pose2D.FieldToRobot.
func FieldToRobot(anchor Pose2D, q Point2D) Point2D { return anchor.FieldToRobot(q) }

// RobotToField is the free-function form of Pose2D.RobotToField.
func RobotToField(anchor Pose2D, q Point2D) Point2D { return anchor.RobotToField(q) }
