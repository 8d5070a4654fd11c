// Package registry stores the node templates of a canvas.
//
// Templates are immutable once registered. Registration deep-copies the
// caller's template and injects the implicit universal incoming slot, so every
// instance created from any template can receive connections.
//
// During application startup, the registry is populated from the config model
// and then validated to ensure that allowed connection targets name registered
// templates, preventing a wide class of confusing interaction failures.
package registry
