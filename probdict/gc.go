package probdict

import (
	"fmt"
	"maps"
	"slices"
)

// TerminalIDMap maps the terminal ids that survive a compaction pass to
// their new ids. Ids missing from the map were removed.
type TerminalIDMap map[int]int

// IdentityMap maps every id in [0, size) to itself.
func IdentityMap(size int) TerminalIDMap {
	m := make(TerminalIDMap, size)
	for id := range size {
		m[id] = id
	}
	return m
}

// RunGC rebuilds t from src under remap.
//
// t is reset to an empty table and then, in ascending old id order, every
// (oldID, newID) pair copies src.Get(oldID) to newID. Gaps in the new ids are
// filled with default records by Set.
//
// If any Set fails the rebuild is abandoned and t becomes unusable: a
// partially remapped table must not serve queries, so it must be discarded.
func (t *Table) RunGC(remap TerminalIDMap, src *Table) error {
	if src == t {
		return ErrGCSelf
	}
	t.buf.Reset()
	t.size = 0
	t.invalid = false

	for _, oldID := range slices.Sorted(maps.Keys(remap)) {
		newID := remap[oldID]
		if err := t.Set(newID, src.Get(oldID)); err != nil {
			t.invalid = true
			t.log.Infof("probdict: cannot set entry in gc: old=%d, new=%d: %v", oldID, newID, err)
			return fmt.Errorf("%w: old=%d, new=%d: %w", ErrGCFailed, oldID, newID, err)
		}
	}
	t.log.Debugf("probdict: gc rebuilt %d entries from %d", t.size, src.Size())
	return nil
}

// Valid reports whether the table can still be used. It is false only after
// a failed RunGC.
func (t *Table) Valid() bool {
	return !t.invalid
}
