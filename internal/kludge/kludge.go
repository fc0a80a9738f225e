// Package kludge groups a couple of stateless helpers. Callers reach them
// through the package name; no receiver or instance is involved.
package kludge

import "github.com/roach88/tips/internal/vec"

// pinnedZ is the Z value Compute forces onto its intermediate position.
const pinnedZ = 100

// Add returns a + b.
func Add(a, b int64) int64 {
	return a + b
}

// Compute scales pos by vel in X and Y, pins Z through a helper that
// mutates the record in place, and returns the sum of the three components.
//
//	Compute(vec.New(1, 2, 3), vec.New(10, 10, 10)) == 10 + 20 + 100
func Compute(vel vec.Velocity, pos vec.Position) float64 {
	p := vec.Default()
	p.X = pos.X * vel.X
	p.Y = pos.Y * vel.Y
	pin(&p)
	return p.X + p.Y + p.Z
}

// pin overwrites the caller's Z.
func pin(pos *vec.Position) {
	pos.Z = pinnedZ
}
