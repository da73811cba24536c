// Package dom is a small DOM-like environment: a tree of boxes with layout
// rects, scroll containers, attributes, inline styles, event listeners, resize
// observation and hit testing.
//
// It is the collaborator the floating engine consumes. Hosts either build their
// UI on it directly or mirror their own widget tree into it each layout pass.
// Geometry follows the browser model: every node has a layout rect in document
// coordinates, scroll containers shift their descendants, fixed nodes ignore
// ancestor scroll, and BoundingRect reports viewport coordinates.
package dom
