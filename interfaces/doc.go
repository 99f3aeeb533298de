// Package interfaces defines the core interfaces and types for the experiment
// registry system. It provides the contract between different components
// without implementation details.
//
// The central abstraction is BlobStore, an opaque key→bytes surface backed by
// a smart contract (or a compatible stand-in). The store offers independent
// single-key get/set operations only: no cross-key transaction, no listing,
// no server-side validation. Everything the registry guarantees is built on
// top of that surface, including its documented limitations.
//
// Key naming is part of the on-chain compatibility contract and must not
// change:
//
//	experiment_keys     the single index blob enumerating all live ids
//	experiment_<id>     one record blob per experiment
package interfaces
