// Package fudge holds an Add that shares its name with kludge.Add. The
// package scope keeps the two apart.
package fudge

// Add returns a + b + 1.
func Add(a, b int64) int64 {
	return a + b + 1
}
