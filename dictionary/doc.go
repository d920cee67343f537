// Package dictionary owns one open word dictionary: the read-only packed trie,
// the mutable probability table keyed by terminal id, and the index relating
// the two.
//
// The trie file is a header (see package header) followed by the trie body.
// The probability table lives in its own file and is rewritten by Flush.
//
// Readers and writers may be called concurrently. Lookups share a read lock;
// updates take the write lock for the duration of a single record write.
// RunGC builds the compacted table without blocking readers and publishes it
// with a brief exclusive swap.
package dictionary
