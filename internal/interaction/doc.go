// Package interaction turns raw pointer, wheel and keyboard input into
// selections, node drags, connection drags, context menus, pans and field
// edits, and issues graph commands for the ones that mutate.
//
// # State Machine
//
// State holds everything ephemeral: the pressed button, the node or slot a
// press was armed on, the selection, an in-flight node or connection drag,
// the open context menu, hover markers, the interaction mode and the view
// transform.
//
// In the default mode a press is hit-tested in fixed priority: slot, node,
// open menu, connection, empty canvas. Moving while armed on a node starts a
// node drag; moving while armed on a slot starts a connection drag. Releasing
// ends whatever drag is active. A release without a drag opens a context
// menu on the slot, field, node or connection under the pointer.
//
// In the add-node mode a press creates a node of the selected template at the
// pointer; moves and releases are ignored.
//
// # Coordinates
//
// Every input method takes screen coordinates. Hit testing happens in graph
// space after applying the inverse view transform. Context menus are anchored
// and laid out in screen space.
//
// # Collaborators
//
// A Layout is told when drags start, step and end, and when the view should
// be persisted. A MenuProvider generates menu titles and items; the renderer
// may overwrite item bounds with SetMenuItemBounds.
package interaction
