// Package presentation builds the JSON descriptors handed to the map
// renderer and the timeline panel from a dataset and a session snapshot.
// Every function here is pure.
package presentation
