// Package canon provides RFC 8785 canonical JSON and the domain-separated
// SHA-256 digests built on it.
//
// Emitted records are hashed by their rendered text rather than by their
// float components, so the canonical form never has to carry a float.
package canon
