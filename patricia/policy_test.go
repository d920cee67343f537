package patricia

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalNodePositionRoundTrip(t *testing.T) {
	p, positions := fixturePolicy(t)

	for _, w := range fixtureWords {
		pos := positions[w.Word]
		cps, prob, err := p.CodePointsAndProbability(pos, MaxWordLength)
		require.NoError(t, err)
		assert.Equal(t, w.Word, string(cps))
		assert.Equal(t, w.Probability, prob)

		n, err := p.ReadNode(pos)
		require.NoError(t, err)
		assert.True(t, n.IsTerminal())
		assert.Equal(t, w.NotAWord, n.IsNotAWord(), w.Word)
		assert.Equal(t, w.Blacklisted, n.IsBlacklisted(), w.Word)
	}
}

func TestTerminalNodePositionAbsent(t *testing.T) {
	p, _ := fixturePolicy(t)

	for _, w := range []string{"", "hel", "hellos", "he", "x", "wo", "worlds", "日", "zebra"} {
		pos, err := p.TerminalNodePositionOfWord([]rune(w), false)
		require.NoError(t, err)
		assert.Equal(t, NotADictPos, pos, w)
	}
}

func TestTerminalNodePositionForceLowerCase(t *testing.T) {
	p, positions := fixturePolicy(t)

	pos, err := p.TerminalNodePositionOfWord([]rune("HeLLo"), true)
	require.NoError(t, err)
	require.Equal(t, positions["hello"], pos)

	pos, err = p.TerminalNodePositionOfWord([]rune("HeLLo"), false)
	require.NoError(t, err)
	require.Equal(t, NotADictPos, pos)

	pos, err = p.TerminalNodePositionOfWord([]rune("ÜBER"), true)
	require.NoError(t, err)
	require.Equal(t, positions["über"], pos)

	// Only the query is lower cased.
	pos, err = p.TerminalNodePositionOfWord([]rune("Zebra"), true)
	require.NoError(t, err)
	require.Equal(t, NotADictPos, pos)
}

func firstCodePoints(nodes []Node) []rune {
	var out []rune
	for _, n := range nodes {
		out = append(out, n.FirstCodePoint())
	}
	return out
}

func TestChildNodes(t *testing.T) {
	p, _ := fixturePolicy(t)
	root := p.RootNode()
	require.Equal(t, 0, root.ChildrenPos)

	t.Run("all children in stored order", func(t *testing.T) {
		children, err := p.AppendChildNodes(root, nil, nil)
		require.NoError(t, err)
		require.Equal(t, []rune{'Z', 'a', 'h', 'w', 'ü', '日'}, firstCodePoints(children))
		for i := 1; i < len(children); i++ {
			require.Greater(t, children[i].Pos, children[i-1].Pos)
		}
	})

	t.Run("filter rejects everything", func(t *testing.T) {
		children, err := p.AppendChildNodes(root, func(Node) bool { return true }, nil)
		require.NoError(t, err)
		require.Empty(t, children)
	})

	t.Run("leading code point filter", func(t *testing.T) {
		filter := LeadingCodePointFilter(func(cp rune) bool { return cp == 'h' })
		children, err := p.AppendChildNodes(root, filter, nil)
		require.NoError(t, err)
		require.Len(t, children, 1)
		h := children[0]
		assert.Equal(t, "hel", string(h.CodePoints))
		assert.False(t, h.IsTerminal())
		assert.Equal(t, 3, h.Depth)

		grand, err := p.AppendChildNodes(h, nil, nil)
		require.NoError(t, err)
		require.Equal(t, []rune{'l', 'p'}, firstCodePoints(grand))
		assert.Equal(t, 4, grand[0].Depth)
		assert.Equal(t, 80, grand[0].Probability)
	})

	t.Run("appends to existing output", func(t *testing.T) {
		out := []Node{{Pos: 42}}
		out, err := p.AppendChildNodes(root, nil, out)
		require.NoError(t, err)
		require.Len(t, out, 7)
		require.Equal(t, 42, out[0].Pos)
	})

	t.Run("restartable and stoppable", func(t *testing.T) {
		seq := p.ChildNodes(root, nil)
		var first, second []Node
		for n, err := range seq {
			require.NoError(t, err)
			first = append(first, n)
		}
		for n, err := range seq {
			require.NoError(t, err)
			second = append(second, n)
			if len(second) == 2 {
				break
			}
		}
		require.Len(t, first, 6)
		require.Equal(t, first[:2], second)
	})

	t.Run("leaf has no children", func(t *testing.T) {
		leaf := slices.IndexFunc(mustChildren(t, p, root), func(n Node) bool { return n.FirstCodePoint() == 'a' })
		require.NotEqual(t, -1, leaf)
		children, err := p.AppendChildNodes(mustChildren(t, p, root)[leaf], nil, nil)
		require.NoError(t, err)
		require.Empty(t, children)
	})
}

func mustChildren(t *testing.T, p *Policy, parent Node) []Node {
	t.Helper()
	children, err := p.AppendChildNodes(parent, nil, nil)
	require.NoError(t, err)
	return children
}

// TestChildNodesWalk checks every word is reachable by enumeration and that
// Depth tracks the accumulated label length.
func TestChildNodesWalk(t *testing.T) {
	p, positions := fixturePolicy(t)

	found := map[string]int{}
	var walk func(parent Node, prefix []rune)
	walk = func(parent Node, prefix []rune) {
		for n, err := range p.ChildNodes(parent, nil) {
			require.NoError(t, err)
			word := append(slices.Clone(prefix), n.CodePoints...)
			require.Equal(t, len(word), n.Depth)
			if n.IsTerminal() {
				found[string(word)] = n.Pos
			}
			walk(n, word)
		}
	}
	walk(p.RootNode(), nil)
	require.Equal(t, positions, found)
}

func TestCodePointsAndProbabilityErrors(t *testing.T) {
	p, positions := fixturePolicy(t)

	_, _, err := p.CodePointsAndProbability(positions["hello"], 4)
	require.ErrorIs(t, err, ErrCodePointOverflow)

	// Overflow is detected on the prefix as well as the last label.
	_, _, err = p.CodePointsAndProbability(positions["hello"], 2)
	require.ErrorIs(t, err, ErrCodePointOverflow)

	cps, _, err := p.CodePointsAndProbability(positions["hello"], 5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(cps))

	h := mustChildren(t, p, p.RootNode())[2]
	_, _, err = p.CodePointsAndProbability(h.Pos, MaxWordLength)
	require.ErrorIs(t, err, ErrNotTerminal)

	for _, pos := range []int{-1, 0, len(p.dictRoot), h.Pos + 1} {
		_, prob, err := p.CodePointsAndProbability(pos, MaxWordLength)
		require.ErrorIs(t, err, ErrNotANode, "pos %d", pos)
		require.Equal(t, NotAProbability, prob)
	}
}

func TestNodeAttributes(t *testing.T) {
	p, positions := fixturePolicy(t)

	prob, err := p.UnigramProbability(positions["wor"])
	require.NoError(t, err)
	require.Equal(t, 10, prob)

	h := mustChildren(t, p, p.RootNode())[2]
	prob, err = p.UnigramProbability(h.Pos)
	require.NoError(t, err)
	require.Equal(t, NotAProbability, prob)

	pos, err := p.ShortcutPositionOfNode(positions["help"])
	require.NoError(t, err)
	require.Equal(t, NotADictPos, pos)

	pos, err = p.BigramsPositionOfNode(positions["help"])
	require.NoError(t, err)
	require.Equal(t, NotADictPos, pos)

	_, err = p.UnigramProbability(NotADictPos)
	require.ErrorIs(t, err, ErrNotANode)
}

func TestShortcuts(t *testing.T) {
	p, positions := fixturePolicy(t)

	pos, err := p.ShortcutPositionOfNode(positions["hello"])
	require.NoError(t, err)
	require.NotEqual(t, NotADictPos, pos)

	var got []ShortcutTarget
	for s, err := range p.ShortcutsPolicy().Targets(pos) {
		require.NoError(t, err)
		got = append(got, s)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "hi", string(got[0].CodePoints))
	assert.True(t, got[0].IsWhitelist())
	assert.Equal(t, "hey", string(got[1].CodePoints))
	assert.Equal(t, 3, got[1].Probability)
	assert.False(t, got[1].IsWhitelist())

	size, err := p.ShortcutsPolicy().ListSize(pos)
	require.NoError(t, err)
	// size field, then flags + "hi" + terminator, flags + "hey" + terminator
	require.Equal(t, 2+4+5, size)
}

func TestBigrams(t *testing.T) {
	p, positions := fixturePolicy(t)

	collect := func(word string) []BigramEntry {
		pos, err := p.BigramsPositionOfNode(positions[word])
		require.NoError(t, err)
		require.NotEqual(t, NotADictPos, pos)
		var out []BigramEntry
		for e, err := range p.BigramsPolicy().Entries(pos) {
			require.NoError(t, err)
			out = append(out, e)
		}
		end, err := p.BigramsPolicy().SkipAllBigrams(pos)
		require.NoError(t, err)
		require.Equal(t, pos+4*len(out), end)
		return out
	}

	require.Equal(t, []BigramEntry{
		{TargetPos: positions["world"], Probability: 7},
		{TargetPos: positions["help"], Probability: 2},
	}, collect("hello"))

	// world is laid out after hello, so this offset is negative.
	require.Less(t, positions["hello"], positions["world"])
	require.Equal(t, []BigramEntry{
		{TargetPos: positions["hello"], Probability: 4},
	}, collect("world"))
}
