package behavior

import (
	"github.com/zeusync/soccerbrain/internal/core/geometry"
	"github.com/zeusync/soccerbrain/internal/core/motion"
)

// Speed levels, on the motion.MaxSpeed scale.
const (
	BishopSpeed  = 5.0
	KickOffSpeed = 7.0
)

// Bishop walks to the position role assignment gave it while facing the
// ball, and keeps the ball in view.
func Bishop(d DataSet) motion.ActionCommand {
	relBall := d.RobotPosition.FieldToRobot(d.TeamBall.Position)
	relBallAngle := geometry.Bearing(relBall)
	relPlayingPose := geometry.NewPose(d.RobotPosition.FieldToRobot(d.RoleTarget.Position), relBallAngle)
	return motion.WalkToPose(relPlayingPose, false, motion.WalkModePath, motion.Velocity{}, BishopSpeed).
		CombineHead(trackBall(d))
}

// KickOff walks to the kick-off set pose, heading included, and watches the
// ball if the team has one.
func KickOff(d DataSet) motion.ActionCommand {
	setPose := d.RobotPosition.PoseToRobot(d.RoleTarget)
	head := motion.LookAround()
	if d.TeamBall.Found {
		head = trackBall(d)
	}
	return motion.WalkToPose(setPose, false, motion.WalkModePath, motion.Velocity{}, KickOffSpeed).
		CombineHead(head)
}

// Stand holds position. It is also what the agent emits when a cycle fails.
func Stand(DataSet) motion.ActionCommand {
	return motion.Stand()
}

func trackBall(d DataSet) motion.HeadCommand {
	return motion.TrackBall(d.RobotPosition, d.TeamBall.Position)
}

// RegisterBuiltins registers every built-in role into r.
func RegisterBuiltins(r Registry) {
	r.Register(NewRoleFunc(RoleStand, Stand))
	r.Register(NewRoleFunc(RoleBishop, Bishop))
	r.Register(NewRoleFunc(RoleKickOff, KickOff))
}
