package header

/*

# Dictionary blob header

A dictionary file is a fixed header, a CBOR attribute map, and then the
packed trie body:

	+----------------------+  32B fixed header (magic, version, options, sizes)
	| HeaderV1             |
	+----------------------+  attrBytes of CBOR (map of text to text)
	| attributes           |
	+----------------------+  headerBytes
	| trie body            |  node position 0 is the first byte here
	+----------------------+

Fixed header fields (big-endian):

	[0:4]   magic "PTD1"
	[4]     version (1)
	[5]     options (bit 0: the probability table carries historical info)
	[6:8]   reserved, zero
	[8:12]  headerBytes (fixed header + attributes)
	[12:16] attrBytes
	[16:32] reserved, zero

## Why the `V1` suffix exists

Functions here implement format version 1. A future incompatible layout is
introduced side by side as V2 rather than silently reinterpreting
previously persisted dictionaries.

*/
