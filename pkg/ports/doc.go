/*
Package ports defines the driven ports (interfaces) of arbor.

These interfaces decouple the stage and the adapters from concrete backends,
so record documents can come from memory, disk or Redis.

# Key Interfaces

  - DocumentSource: read-only access to record documents by key.
  - DocumentStore: a DocumentSource that can also save and delete.
  - DistributedLocker: serializes actor ticks across replicas.
*/
package ports
