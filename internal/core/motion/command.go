package motion

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/soccerbrain/internal/core/geometry"
)

// ActionCommand is the command emitted for one decision cycle. Body is the
// primary payload; Head is owned separately and is never merged into Body.
type ActionCommand struct {
	Body LocomotionCommand `json:"body"`
	Head HeadCommand       `json:"head"`
}

// CombineHead packages l with the head command h.
func (l LocomotionCommand) CombineHead(h HeadCommand) ActionCommand {
	return ActionCommand{Body: l, Head: h}
}

// CombineHead returns a copy of c carrying h as its head command. Body is
// left as is.
func (c ActionCommand) CombineHead(h HeadCommand) ActionCommand {
	c.Head = h
	return c
}

// Stand is the safe default: hold the current pose and look ahead.
func Stand() ActionCommand {
	return WalkToPose(geometry.Pose2D{}, false, WalkModeDirect, Velocity{}, 0).CombineHead(LookForward())
}

// Fingerprint digests every field of c. Equal commands give equal
// fingerprints, so consumers can skip re-sending an unchanged command. -0 and
// +0 hash alike since they compare equal.
func (c ActionCommand) Fingerprint() uint64 {
	var buf [8*10 + 3]byte
	b := buf[:0]
	for _, f := range [...]float64{
		c.Body.Target.Position.X, c.Body.Target.Position.Y, c.Body.Target.Heading,
		c.Body.Velocity.X, c.Body.Velocity.Y, c.Body.Velocity.Theta,
		c.Body.Speed,
		c.Head.Target.X, c.Head.Target.Y, c.Head.Yaw,
	} {
		if f == 0 {
			f = 0
		}
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
	}
	var bypass byte
	if c.Body.BypassAvoidance {
		bypass = 1
	}
	b = append(b, bypass, byte(c.Body.Mode), byte(c.Head.Mode))
	return xxhash.Sum64(b)
}
