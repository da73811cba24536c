// Package geom holds the value geometry shared by the placement engine, the
// DOM-like environment and the interaction hooks.
//
// All types are immutable snapshots: operations return new values and never
// modify their receiver. Coordinates are float64 so the same engine serves
// pixel layouts and terminal cells; callers round when painting cells.
// Types are re-exported through the root floatui package for public use.
package geom
