package extbuf

/*

# Extendable byte buffers

This package provides the byte level primitive underneath the probability
record table: a growable region addressed by byte offset, with fixed width
unsigned integer fields.

It follows the same style as the other storage primitives in this module:

- explicit byte layouts (all fields are big-endian)
- offset arithmetic done by the caller, checked by this package
- no concurrency guarantees; one writer, or readers only

## Growth

A write that lands beyond the current extent grows the buffer so that it
covers the write. Bytes between the old extent and the written field are zero.
Growth is bounded by a maximum size; a write that would exceed it fails
with ErrExtendLimit and leaves the buffer unchanged.

## Tail position

TailPosition is the first offset past every byte that has been written (or
loaded). Record tables use it to detect stale trailing records and to know
where appended growth begins.

*/
