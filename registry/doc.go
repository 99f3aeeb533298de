// Package registry maintains the experiment record set over a BlobStore.
//
// The blob store is the single source of truth. The registry holds no
// durable cache: the index manager re-reads the index blob for every
// mutation, and the refresh pipeline rebuilds the whole in-memory view from
// scratch on each call.
//
// The index append is a read-modify-write with no isolation. Two concurrent
// appends from different clients can overwrite each other's intermediate
// state and silently drop an id — an accepted limitation of the external
// store, which offers no compare-and-swap.
package registry
