// Package storage provides BlobStore implementations over pluggable
// backends.
//
// The canonical backend is the DataStore smart contract reached through an
// Ethereum RPC endpoint; the others exist for development, testing and
// deployments that mirror the same key→bytes surface onto conventional
// infrastructure.
//
// # Store URI Format
//
// Backends are selected by URI:
//
//   - onchain://0x1234567890abcdef1234567890abcdef12345678
//   - file:///var/lib/experiment-registry/
//   - memory://
//   - s3://[ACCESS_KEY:SECRET_KEY@]bucket/prefix/?region=us-west-2
//   - vault://vault.example.com:8200/secret/experiments
//
// All backends implement the same semantics: an absent or empty key reads as
// interfaces.ErrNotFound, and a write only returns once it reached a
// terminal outcome. None of them offers cross-key atomicity or
// compare-and-swap; the registry's index handling is built around that
// limitation.
package storage
