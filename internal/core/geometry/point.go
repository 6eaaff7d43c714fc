package geometry

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Point2D is a position in a frame that is implicit from context: either the
// field frame or the frame anchored at the robot. Points from different frames
// must only be combined after an explicit transform.
type Point2D r2.Point

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D { return Point2D{X: x, Y: y} }

func (p Point2D) vec() r2.Point { return r2.Point(p) }

func (p Point2D) Add(q Point2D) Point2D { return Point2D(p.vec().Add(q.vec())) }

func (p Point2D) Sub(q Point2D) Point2D { return Point2D(p.vec().Sub(q.vec())) }

func (p Point2D) Mul(m float64) Point2D { return Point2D(p.vec().Mul(m)) }

func (p Point2D) Dot(q Point2D) float64 { return p.vec().Dot(q.vec()) }

// Norm returns the distance of p from the frame origin.
func (p Point2D) Norm() float64 { return p.vec().Norm() }

// Rotate rotates p about the frame origin by angle radians, counter-clockwise.
func (p Point2D) Rotate(angle float64) Point2D {
	s, c := math.Sincos(angle)
	return Point2D{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// IsZero reports whether p is exactly the frame origin.
func (p Point2D) IsZero() bool { return p.X == 0 && p.Y == 0 }

func (p Point2D) String() string { return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y) }

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MarshalJSON writes p as {"x":..,"y":..}, the same keys the config uses.
func (p Point2D) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{X: p.X, Y: p.Y})
}

func (p *Point2D) UnmarshalJSON(b []byte) error {
	var v pointJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Point2D{X: v.X, Y: v.Y}
	return nil
}
