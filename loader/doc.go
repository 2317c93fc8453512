// Package loader fetches raw trace documents from local files or HTTP URLs.
//
// Two formats are supported:
//   - json: the trace file produced by the trace generator, with a trip_layer
//     section (routes and their days) and a point_layer section (parallel
//     arrays describing point events)
//   - gtfsrt: a recording of GTFS-Realtime FeedMessage snapshots, written as
//     varint length-delimited protobuf messages; one vehicle's positions
//     become one trace
//
// LoadAll fetches every source concurrently and returns only after each fetch
// has settled. A source that fails is reported in its Result and never aborts
// the others.
package loader
