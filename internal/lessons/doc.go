// Package lessons runs the linear demonstration script: record
// construction, grouped helpers, a scalar alias, shared handles, and
// iteration over a sequence of shared records.
//
// Run computes a Report; WriteText renders it for the console. Writing the
// sequence to a file is left to the caller (see package emit) so the one
// fallible step stays visible at the process boundary.
package lessons
