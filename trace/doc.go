// Package trace defines the uniform data model shared by every component.
//
// A loaded dataset consists of:
//   - Trace: one tracked person, with a stable index, color and profile
//   - TripSegment: one path a trace travelled on a given day
//   - PointEvent: one timestamped activity at a point of interest
//
// All values are created once by the normalizer and never mutated afterwards,
// so a Dataset is safe for concurrent read access.
package trace
