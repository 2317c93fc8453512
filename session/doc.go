// Package session owns the interactive state of one viewer: the filter,
// the selection, expanded timeline groups, the camera and the timeline
// panel. Every change goes through a named transition.
package session
