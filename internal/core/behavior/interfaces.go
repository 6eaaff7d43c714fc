package behavior

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/soccerbrain/internal/core/events/bus"
	"github.com/zeusync/soccerbrain/internal/core/geometry"
	"github.com/zeusync/soccerbrain/internal/core/motion"
)

var (
	ErrUnknownRole = errors.New("unknown role")
	ErrNoRole      = errors.New("no role assigned")
	ErrNoFrames    = errors.New("no input frames")
)

// Role identifies a tactical role handed out by role assignment. The zero
// value RoleNone means no role was assigned and has no behavior.
type Role uint8

const (
	RoleNone Role = iota
	RoleStand
	RoleBishop
	RoleKickOff
)

var roleNames = [...]string{"none", "stand", "bishop", "kick_off"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// ParseRole resolves a role by its config name.
func ParseRole(s string) (Role, error) {
	for i, n := range roleNames[RoleStand:] {
		if n == s {
			return RoleStand + Role(i), nil
		}
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// BallState is the team-fused ball estimate in the field frame.
type BallState struct {
	Position geometry.Point2D `json:"position"`
	Found    bool             `json:"found"`
}

// DataSet is the read-only snapshot a role behavior decides on. All
// positions are field frame. The snapshot provider guarantees the fields come
// from the same cycle.
type DataSet struct {
	Cycle         uint64          `json:"cycle"`
	Role          Role            `json:"role"`
	RobotPosition geometry.Pose2D `json:"robot_position"`
	TeamBall      BallState       `json:"team_ball"`
	// RoleTarget is where role assignment wants this robot to stand for its
	// current role.
	RoleTarget geometry.Pose2D `json:"role_target"`
}

// RoleBehavior maps one cycle's beliefs to the command for that cycle.
// Implementations must be pure: no retained state, no side effects.
type RoleBehavior interface {
	Role() Role
	Execute(d DataSet) motion.ActionCommand
}

// RoleFunc wraps a plain function as a RoleBehavior.
type RoleFunc struct {
	role Role
	Fn   func(d DataSet) motion.ActionCommand
}

func NewRoleFunc(role Role, fn func(d DataSet) motion.ActionCommand) RoleFunc {
	return RoleFunc{role: role, Fn: fn}
}

func (f RoleFunc) Role() Role                             { return f.role }
func (f RoleFunc) Execute(d DataSet) motion.ActionCommand { return f.Fn(d) }

// Registry is the function table from role to behavior.
type Registry interface {
	Register(b RoleBehavior)
	Lookup(role Role) (RoleBehavior, error)
	Roles() []Role
}

// Provider supplies the cycle snapshot from the estimators and role
// assignment.
type Provider interface {
	Snapshot(ctx context.Context) (DataSet, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (DataSet, error)

func (f ProviderFunc) Snapshot(ctx context.Context) (DataSet, error) { return f(ctx) }

// Memory keeps a bounded history of emitted decisions.
type Memory interface {
	AppendDecision(rec DecisionRecord)
	// History returns a copy, oldest first.
	History() []DecisionRecord
	Reset()
	Save() ([]byte, error)
	// Load replaces the history with a Save result.
	Load(b []byte) error
}

// DecisionRecord is the audit entry of one cycle.
type DecisionRecord struct {
	ID          string        `json:"id"`
	Cycle       uint64        `json:"cycle"`
	Role        Role          `json:"role"`
	Fingerprint uint64        `json:"fingerprint"`
	Fallback    bool          `json:"fallback"`
	Duration    time.Duration `json:"duration"`
	Timestamp   time.Time     `json:"ts"`
}

// CycleReportEvent is the bus event type carrying a CycleReport.
const CycleReportEvent = "cycle.report"

// CycleReport is what one Step produced.
type CycleReport struct {
	ID      string               `json:"id"`
	Cycle   uint64               `json:"cycle"`
	Role    Role                 `json:"role"`
	Command motion.ActionCommand `json:"command"`
	// Fingerprint is Command.Fingerprint(); Changed is false when it equals
	// the previous cycle's.
	Fingerprint uint64        `json:"fingerprint"`
	Changed     bool          `json:"changed"`
	Fallback    bool          `json:"fallback"`
	Err         string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
	Timestamp   time.Time     `json:"ts"`
}

// Agent drives role behaviors once per control cycle.
type Agent interface {
	// Step runs one cycle. The report is always usable: when the snapshot,
	// the role lookup or the behavior itself fails, it carries the safe
	// default command and the error is returned alongside.
	Step(ctx context.Context) (CycleReport, error)
	// Run calls Step every interval until ctx is done.
	Run(ctx context.Context, interval time.Duration) error
	Memory() Memory
	Events() bus.EventBus
}
