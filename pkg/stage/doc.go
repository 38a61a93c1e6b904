/*
Package stage hosts live actors loaded from record documents.

A Stage owns every actor of the documents loaded into it, addresses them by
name, and serializes ticks per actor so that concurrent callers (HTTP
requests, MCP tool calls) never tick the same tree at once. With a
DistributedLocker configured, the same guarantee holds across replicas.
*/
package stage
