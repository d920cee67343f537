package bloom

/*

# Bloom prefilter for word lookups

This package provides the primitives of a single Bloom filter that lives in a
caller allocated byte region. A dictionary inserts every stored word when it
is opened and consults the filter before descending the trie.

Most strings typed into a keyboard are not words, and for those the filter
answers without decoding a single trie node.

## What the filter answers

- "definitely not present": the word is not in the dictionary.
- "maybe present": the trie must be consulted. False positives are possible.

## Layout

	+----------------------+  32B header (magic, version, params)
	| HeaderV1             |
	+----------------------+  ceil(mBits/8) bytes
	| bitset               |
	+----------------------+

## Indexing and bit numbering

Bit j of the bitset is bit (j & 7) of byte (j >> 3), least significant bit
first. An element selects k bits by double hashing:

	j_i = (h1 + i*h2) mod mBits,  i in [0, k)

where h1 is the xxhash of the element and h2 the xxhash of the domain byte
followed by the element, forced odd.

## Why the V1 suffix

Functions implementing this layout and hashing carry a V1 suffix. A changed
layout or hash scheme is introduced side by side as V2.

*/
