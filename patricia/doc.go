package patricia

/*

# Packed patricia trie dictionaries

This package navigates a read-only, packed patricia trie whose terminal nodes
are the words of a dictionary. The trie is never materialized: every
operation decodes just the nodes it visits, straight from the byte slice.

## Layout

The body is a sequence of node arrays. Position 0 is the root array.

	node array:  count(1 or 2) | node 0 | node 1 | ... | node count-1

A count below 0x80 takes one byte; larger counts set the high bit and use
two bytes (15 bit count).

	node: flags(1) | code points | [probability(1)] | [children offset(1..3)]
	      | [shortcut list] | [bigram list]

Flags:

	0xC0  children offset width (0 = no children, 1..3 bytes)
	0x20  multiple code points, terminated by 0x1F
	0x10  terminal
	0x08  has shortcut list
	0x04  has bigram list
	0x02  not a word
	0x01  blacklisted

A code point in [0x20, 0xFF] is one byte. Anything else is three bytes,
big-endian, whose first byte is below 0x20.

The children offset is relative to the position of the offset field itself
and always points forward. Node arrays are laid out depth first: an array is
followed by the subtree of its first child, then the subtree of its second,
and so on. Two properties follow and are relied on:

 1. decoding only ever reads forward, so a walk always terminates
 2. sibling children offsets increase, so the subtree holding a position
    can be found without parent pointers

## Auxiliary lists

Shortcut and bigram lists are decoded by ShortcutListPolicy and
BigramListPolicy. The node decoder only knows how to skip them.

	shortcut list: size(2, includes itself) | entry ...
	shortcut entry: flags(1: 0x80 has next, 0x0F probability) | code points | 0x1F

	bigram entry: flags(1: 0x80 has next, 0x40 negative, 0x30 offset width,
	              0x0F probability) | offset(1..3)

A bigram offset is relative to its offset field and names the target's node
position.

## Untrusted input

Dictionaries come from storage that may be corrupt. Every field read is
bounds checked and a malformed dictionary yields ErrCorrupt; nothing panics
and nothing reads outside the slice.

*/
