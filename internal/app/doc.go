// Package app wires a canvas together: it loads the definition files, builds
// the template registry and the graph, and owns the graph and the interaction
// state behind two locks.
//
// Host callbacks (pointer, wheel, keyboard, menu and field edits) lock both
// aggregates for their whole duration. Render never waits: when either lock is
// held it skips the frame and reports ErrLockContended.
package app
