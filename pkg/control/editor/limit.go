package editor

import "fmt"

// DefaultMaxLeaves is the leaf-rule cap applied when no limit is configured.
const DefaultMaxLeaves = 5

// LeafLimit is the tier policy capping the total number of leaf rules across
// the whole tree. It is a product restriction, not a structural one: the data
// model represents any number of leaves, and the limit varies by subscription
// tier, so it is injected into the editor rather than hard-coded in mutation
// logic. A Max of zero or less means unlimited.
type LeafLimit struct {
	Max int
}

// Allows reports whether a tree currently holding n leaves may accept one more.
func (l LeafLimit) Allows(n int) bool {
	return l.Max <= 0 || n < l.Max
}

// LimitError signals a refused mutation: adding the node would push the leaf
// count past the configured cap. It is a recoverable user-facing gate (the UI
// shows a tier-limit notice), not a correctness failure; the tree is returned
// unchanged alongside it.
type LimitError struct {
	Max   int // configured cap
	Count int // current leaf count
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("condition limit reached: tree already holds %d of %d allowed conditions", e.Count, e.Max)
}

// UnknownNodeError signals a mutation addressed at a node id that does not
// exist in the tree.
type UnknownNodeError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("no node with id %q in tree", e.ID)
}
