// Package floatui positions floating elements (menus, tooltips, popovers,
// select lists) against an anchor and coordinates the interactions that open
// and close them.
//
// Users import this single package for the public API: the Popup
// primitive, the Tooltip, Popover, Menu, Select and context menu components
// built from it, placement and state types, and the provider registry parts
// use to find their root.
//
// A Popup writes its result onto the floating element as a stable contract
// of attributes (data-open, data-side, data-align, ...) and styles (position,
// top, left and the --available-*, --anchor-* and --transform-origin custom
// properties). Layout exposes the same data to hosts that draw directly.
package floatui
