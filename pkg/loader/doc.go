// Package loader turns record text into linked node graphs.
//
// Loading runs in four steps: the input is split into top-level records by
// brace depth, each record is parsed into a [record.Record], every record
// (including records nested inline) is instantiated through a
// [registry.Registry], and finally reference fields are linked. Linking only
// starts after every record was instantiated, so records may reference ids
// defined later in the input.
package loader
