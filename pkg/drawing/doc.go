// Package drawing defines the shape model of a paint document.
// A Document is an ordered list of Commands; each Command wraps one
// immutable Shape (circle, rectangle or squiggle) and its Kind.
package drawing
