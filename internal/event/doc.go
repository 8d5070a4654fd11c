// Package event defines the notifications published while a canvas is being
// edited and the Broadcaster that delivers them.
//
// # Delivery Contract
//
// Delivery is synchronous: Emit calls every listener, in subscription order,
// before it returns. Because commands run one at a time, listeners observe
// effects in exactly the order they were issued. A listener must not call
// Emit itself; a nested Emit is dropped and logged.
//
// # Payloads
//
// Every payload implements Event. Type returns a stable snake_case name used
// by loggers and by the relay when forwarding events to remote observers.
package event
