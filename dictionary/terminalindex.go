package dictionary

import (
	"fmt"
	"maps"
	"slices"

	"github.com/forestrie/go-wordtrie/patricia"
	"github.com/forestrie/go-wordtrie/probdict"
)

// terminalIndex relates terminal ids to trie positions. An index is never
// modified once published; updates produce a new one.
type terminalIndex struct {
	// positions[id] is the terminal node position, or NotADictPos for ids
	// freed by a compaction.
	positions []int
	ids       map[int]int
}

// buildTerminalIndex assigns dense ids to the terminal nodes of the trie in
// depth first pre-order, siblings in stored order. onTerminal, if not nil, is
// called with each word as it is assigned an id; the slice is reused.
func buildTerminalIndex(p *patricia.Policy, onTerminal func(word []rune) error) (*terminalIndex, error) {
	ix := &terminalIndex{ids: map[int]int{}}
	word := make([]rune, 0, patricia.MaxWordLength)
	var walk func(parent patricia.Node) error
	walk = func(parent patricia.Node) error {
		for n, err := range p.ChildNodes(parent, nil) {
			if err != nil {
				return err
			}
			word = append(word[:parent.Depth], n.CodePoints...)
			if n.IsTerminal() {
				ix.ids[n.Pos] = len(ix.positions)
				ix.positions = append(ix.positions, n.Pos)
				if onTerminal != nil {
					if err := onTerminal(word); err != nil {
						return err
					}
				}
			}
			if err := walk(n); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(p.RootNode()); err != nil {
		return nil, err
	}
	return ix, nil
}

func (ix *terminalIndex) Len() int {
	return len(ix.positions)
}

func (ix *terminalIndex) ID(pos int) (int, bool) {
	id, ok := ix.ids[pos]
	return id, ok
}

func (ix *terminalIndex) Pos(id int) (int, bool) {
	if id < 0 || id >= len(ix.positions) || ix.positions[id] == patricia.NotADictPos {
		return patricia.NotADictPos, false
	}
	return ix.positions[id], true
}

// withID returns a copy of the index with pos assigned the next free id.
func (ix *terminalIndex) withID(pos int) (*terminalIndex, int) {
	next := &terminalIndex{
		positions: append(slices.Clip(ix.positions), pos),
		ids:       maps.Clone(ix.ids),
	}
	id := len(ix.positions)
	next.ids[pos] = id
	return next, id
}

// remap returns the index after a compaction. Ids absent from remap lose
// their position. New ids must be below Len.
func (ix *terminalIndex) remap(remap probdict.TerminalIDMap) (*terminalIndex, error) {
	size := 0
	seen := make(map[int]int, len(remap))
	for oldID, newID := range remap {
		if oldID < 0 || newID < 0 {
			return nil, fmt.Errorf("%w: %d -> %d", ErrBadRemap, oldID, newID)
		}
		// A compaction never grows the id space.
		if newID >= ix.Len() {
			return nil, fmt.Errorf("%w: %d -> %d beyond %d terminals", ErrBadRemap, oldID, newID, ix.Len())
		}
		if prev, ok := seen[newID]; ok {
			return nil, fmt.Errorf("%w: %d and %d both map to %d", ErrBadRemap, prev, oldID, newID)
		}
		seen[newID] = oldID
		size = max(size, newID+1)
	}

	next := &terminalIndex{
		positions: slices.Repeat([]int{patricia.NotADictPos}, size),
		ids:       make(map[int]int, len(remap)),
	}
	for oldID, newID := range remap {
		pos, ok := ix.Pos(oldID)
		if !ok {
			continue
		}
		next.positions[newID] = pos
		next.ids[pos] = newID
	}
	return next, nil
}

// tableSize returns the number of records a table remapped by remap needs.
func tableSize(remap probdict.TerminalIDMap) int {
	size := 0
	for _, newID := range remap {
		size = max(size, newID+1)
	}
	return size
}
