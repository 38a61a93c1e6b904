/*
Package tree implements the behavior tree node kinds and the Actor that drives
a tree.

Composite nodes (Sequence, Selector) own an ordered list of children and work
through it across repeated ticks. Decorators (PassThrough, Invert) own a single
child. LeafAction adapts an external domain.Action to the node contract.

Ticking is synchronous: Execute always returns before control goes back to the
caller, and "not finished yet" is reported as domain.StatusReady. A tree must
not be ticked from more than one goroutine at a time.
*/
package tree
