/*
Package arbor is a behavior-tree engine driven by declarative record text.

A document is a stream of brace-delimited records. Each record names an id and
a type and may reference other records through rootnode, childnodes and
decoratee, either by id or by nesting the record inline. Loading happens in
two passes: every record is instantiated through the type registry, then
references are linked, so forward references are fine.

# Ticking

Every node answers a tick with one of three statuses: ready (still running),
success or failure. A Sequence succeeds when every child has succeeded and
fails on the first failing child. A Selector succeeds on the first succeeding
child and fails when all have failed. Invert swaps success and failure,
PassThrough forwards its child as is, and a LeafAction runs an action.
An Actor owns a root node and ticks it once per Execute.

# Usage

	res, err := arbor.Load(`
	{id: actor_01, type: Actor, name: Billy Bob, rootnode: seq_01}
	{id: seq_01, type: Sequence, childnodes: [
	  {id: l1, type: LeafAction, action: Succeed},
	  {id: l2, type: LeafAction, action: Succeed}]}`)
	if err != nil {
		log.Fatal(err)
	}
	actor, _ := res.Actor("Billy Bob")
	status, _ := actor.Execute() // ready
	status, _ = actor.Execute()  // success

Custom node types and actions are added to a registry.Registry and passed
with WithRegistry. The stage, HTTP and MCP adapters under pkg/ host loaded
actors for remote ticking.
*/
package arbor
