// Package probdict stores one fixed-width probability record per terminal id.
//
// Records live back to back in an extbuf.Buffer:
//
//	record i occupies [i*EntrySize, (i+1)*EntrySize)
//
// and each record is laid out as
//
//	flags(1) | probability(1)                                   // plain
//	flags(1) | probability(1) | timestamp(4) | level(1) | count(1) // historical
//
// Whether the historical fields are present is fixed when the table is
// created; it is not stored in the file and loaders must supply it.
//
// Set fills any gap between the current size and the target id with default
// records, so a table is always dense even though its storage only grows.
package probdict
