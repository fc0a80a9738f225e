// Package vec provides the three-component coordinate record used for both
// positions and velocities.
package vec

import "fmt"

// Default component values, applied positionally when omitted.
const (
	DefaultX = 0
	DefaultY = 0
	DefaultZ = 1
)

// Vec is a plain coordinate record. All fields are public and mutable.
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Velocity and Position name the roles a Vec plays. They are aliases, so
// the compiler treats all three as the same type.
type (
	Velocity = Vec
	Position = Vec
)

// New builds a Vec from zero to three components. Missing components take
// the defaults (0, 0, 1) in positional order.
//
// New panics if given more than three components.
func New(xyz ...float64) Vec {
	if len(xyz) > 3 {
		panic(fmt.Sprintf("vec.New: want at most 3 components, got %d", len(xyz)))
	}
	v := Default()
	if len(xyz) > 0 {
		v.X = xyz[0]
	}
	if len(xyz) > 1 {
		v.Y = xyz[1]
	}
	if len(xyz) > 2 {
		v.Z = xyz[2]
	}
	return v
}

// Default returns the record built with no arguments: (0, 0, 1).
func Default() Vec {
	return Vec{X: DefaultX, Y: DefaultY, Z: DefaultZ}
}

// FormatFloat renders a component as decimal text with six significant
// digits, switching to exponent form for very large or small magnitudes.
func FormatFloat(f float64) string {
	return fmt.Sprintf("%.6g", f)
}

// String renders the components separated by single spaces.
func (v Vec) String() string {
	return FormatFloat(v.X) + " " + FormatFloat(v.Y) + " " + FormatFloat(v.Z)
}
