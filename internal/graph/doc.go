// Package graph owns the canvas data and is the only place it is mutated.
//
// # Why Graph Package Exists
//
// Templates and instances reference each other by id only. Every mutation is
// a model.Command routed through Graph.ExecuteCommand, which checks the data
// invariants before touching anything:
//   - **Instance limits:** a template never has more than max_instances live
//     nodes, and a node is not deleted when that would reach min_instances.
//   - **Slot cardinality:** a host slot never holds more than max_connections.
//   - **Capability locks:** template, instance, slot and field flags are
//     evaluated as an ordered chain; the first locked level is reported.
//   - **Field values:** text values satisfy their field type.
//
// # Connections
//
// A connection is stored only on its host slot. Queries for incoming edges
// scan every slot of every node.
//
// # Best-effort Cascades
//
// DeleteSlotConnections and DeleteNode remove connections one by one. A failed
// removal is collected into a BatchError and the command fails, but removals
// that already succeeded are kept. There is no rollback.
//
// # Events
//
// ExecuteCommand publishes CommandExecuted or CommandFailed on the graph's
// broadcaster for every command, and ConnectionCompleted when a connection is
// stored.
//
// # Thread-Safety
//
// Graph is not safe for concurrent use. The owner (internal/app) guards it
// with a lock for the duration of each host callback.
package graph
