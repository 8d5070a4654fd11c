// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of a node canvas: the
// immutable templates a host registers and the mutable instances placed on the
// canvas from them.
//
// # Core Concepts
//
//   - NodeTemplate: The reusable schema of a node kind. It declares the node's
//     slots and fields, instance-count limits and capability flags.
//
//   - NodeInstance: A placement of a template on the canvas. It owns one
//     SlotInstance per slot template and one FieldInstance per field template.
//
//   - Connection: A directed edge. It is recorded on the host (outgoing) slot
//     only; the target slot keeps no mirror record.
//
//   - Command: A tagged mutation request executed by the graph engine.
//
// All cross-references (template ids, slot template ids, field template ids,
// node ids) are plain strings resolved by lookup, never embedded pointers, so
// templates and instances can be validated independently of traversal order.
package model
