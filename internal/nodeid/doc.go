// internal/nodeid/doc.go

/*
Package nodeid generates and validates identifiers for node instances and
template parts.

Instance ids are random UUIDv4 strings unless the host supplies its own (for
example through a canvas file), in which case the id must satisfy Validate.
Template, slot and field ids follow the same validation rule.
*/
package nodeid
