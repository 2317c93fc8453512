// Package tracemap serves interactive views over a small set of human
// mobility traces. Traces are loaded once at startup; each viewer gets a
// session whose filter, selection and camera state are driven by posted
// interaction events, and whose map layers and timeline panel are served
// as JSON for a client-side renderer.
package tracemap
