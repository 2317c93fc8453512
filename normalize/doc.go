// Package normalize turns settled loader results into the read-only
// trace.Dataset shared by every session.
package normalize
