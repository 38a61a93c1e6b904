/*
Package domain contains the core contracts of the Arbor behavior tree engine.

It defines the tri-state execution result, the capability surfaces every node
and action implements, the typed loader errors and the observability hooks.
This package is kept pure and free of external dependencies so that node
implementations, the loader and the adapters can all depend on it.

# Key Entities

  - Status: The result of one tick (ready, success or failure).
  - Node: Anything that can be ticked and told about its own outcome.
  - Composite / Decorator / RootHolder: The slots the loader links references into.
  - Action: The external capability a leaf node adapts to.
*/
package domain
