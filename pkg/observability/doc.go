/*
Package observability turns lifecycle hooks into metrics and logs.

Metrics registers Prometheus collectors for node ticks and loads; its Hooks
method returns domain.LifecycleHooks that feed them. LogHooks does the same
for a structured logger. Combine both with LifecycleHooks.Merge.
*/
package observability
