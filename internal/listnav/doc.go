// Package listnav drives keyboard and pointer navigation inside list-shaped
// popups: menus, listboxes and select options.
//
// Items register into a [Registry] arena and are ordered by explicit index
// hints or by document position, never by registration order. A
// [Controller] tracks the active item by its registration token, moves it
// with arrow keys according to its orientation, matches typed characters
// against item labels and hands control to a nested submenu's controller.
package listnav
