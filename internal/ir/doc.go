// Package ir provides the value layer shared by the built-in runtime and the
// result engine.
//
// This package defines the closed set of value kinds, the numeric promotion
// ladder, comparison and identity, and the canonical JSON encoding used for
// hashing. It imports only internal/temporal; every other internal package
// imports ir.
//
// Key design constraints:
//   - Value is sealed; type switches over it are exhaustive
//   - Values are immutable once constructed
//   - Numeric literals travel through canonical JSON as lexical strings
//   - Entity display names are fixed at creation and never recomputed
package ir
