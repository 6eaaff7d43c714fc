package behavior

import (
	"context"
	"sync"

	"github.com/zeusync/soccerbrain/internal/core/geometry"
)

// Frame is one scripted set of estimator and role-assignment outputs.
type Frame struct {
	Robot    geometry.Pose2D  `json:"robot" yaml:"robot"`
	Ball     geometry.Point2D `json:"ball" yaml:"ball"`
	BallLost bool             `json:"ball_lost" yaml:"ball_lost"`
	Target   geometry.Pose2D  `json:"target" yaml:"target"`
}

// ScriptProvider replays frames in order, wrapping around at the end. It
// stands in for the estimators when running from a scenario file.
type ScriptProvider struct {
	mu     sync.Mutex
	role   Role
	frames []Frame
	cycle  uint64
}

func NewScriptProvider(role Role, frames []Frame) (*ScriptProvider, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	cp := make([]Frame, len(frames))
	copy(cp, frames)
	return &ScriptProvider{role: role, frames: cp}, nil
}

func (p *ScriptProvider) Snapshot(ctx context.Context) (DataSet, error) {
	if err := ctx.Err(); err != nil {
		return DataSet{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	f := p.frames[p.cycle%uint64(len(p.frames))]
	p.cycle++
	return DataSet{
		Cycle:         p.cycle,
		Role:          p.role,
		RobotPosition: geometry.NewPose(f.Robot.Position, f.Robot.Heading),
		TeamBall:      BallState{Position: f.Ball, Found: !f.BallLost},
		RoleTarget:    geometry.NewPose(f.Target.Position, f.Target.Heading),
	}, nil
}
