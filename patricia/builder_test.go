package patricia

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderLayout(t *testing.T) {
	body := buildBody(t, []WordEntry{
		{Word: "ac", Probability: 6},
		{Word: "ab", Probability: 5},
	})
	expected := []byte{
		0x01,                        // root array count
		0xC0, 'a', 0x00, 0x00, 0x03, // "a", children three bytes ahead of the field
		0x02,         // children array count
		0x10, 'b', 5, // "b" terminal
		0x10, 'c', 6, // "c" terminal
	}
	require.Equal(t, expected, body)
}

func TestBuilderEmpty(t *testing.T) {
	body, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, []byte{0}, body)

	p := NewPolicy(body)
	children, err := p.AppendChildNodes(p.RootNode(), nil, nil)
	require.NoError(t, err)
	require.Empty(t, children)

	pos, err := p.TerminalNodePositionOfWord([]rune("a"), false)
	require.NoError(t, err)
	require.Equal(t, NotADictPos, pos)
}

func TestBuilderSplitsEdges(t *testing.T) {
	words := []WordEntry{
		{Word: "abcd", Probability: 4},
		{Word: "ab", Probability: 2},
		{Word: "abx", Probability: 3},
		{Word: "a", Probability: 1},
	}
	p := NewPolicy(buildBody(t, words))

	for _, w := range words {
		pos, err := p.TerminalNodePositionOfWord([]rune(w.Word), false)
		require.NoError(t, err)
		require.NotEqual(t, NotADictPos, pos, w.Word)

		cps, prob, err := p.CodePointsAndProbability(pos, MaxWordLength)
		require.NoError(t, err)
		assert.Equal(t, w.Word, string(cps))
		assert.Equal(t, w.Probability, prob)
	}

	pos, err := p.TerminalNodePositionOfWord([]rune("abc"), false)
	require.NoError(t, err)
	require.Equal(t, NotADictPos, pos)
}

func TestBuilderLargeGroup(t *testing.T) {
	var words []WordEntry
	for i := range 300 {
		words = append(words, WordEntry{Word: string(rune(0x100 + i)), Probability: i % 256})
	}
	body := buildBody(t, words)
	// Two byte count with the high bit set.
	require.Equal(t, []byte{0x81, 0x2C}, body[:2])

	p := NewPolicy(body)
	children, err := p.AppendChildNodes(p.RootNode(), nil, nil)
	require.NoError(t, err)
	require.Len(t, children, 300)

	for _, w := range words {
		pos, err := p.TerminalNodePositionOfWord([]rune(w.Word), false)
		require.NoError(t, err)
		prob, err := p.UnigramProbability(pos)
		require.NoError(t, err)
		require.Equal(t, w.Probability, prob)
	}
}

func TestBuilderRejects(t *testing.T) {
	tests := []struct {
		name  string
		entry WordEntry
		err   error
	}{
		{name: "empty", entry: WordEntry{}, err: ErrEmptyWord},
		{name: "invalid utf8", entry: WordEntry{Word: "a\xffb"}, err: ErrBadCodePoint},
		{name: "too long", entry: WordEntry{Word: strings.Repeat("x", MaxWordLength+1)}, err: ErrWordTooLong},
		{name: "probability high", entry: WordEntry{Word: "x", Probability: MaxProbability + 1}, err: ErrBadProbability},
		{name: "probability negative", entry: WordEntry{Word: "x", Probability: -1}, err: ErrBadProbability},
		{
			name:  "shortcut probability",
			entry: WordEntry{Word: "x", Shortcuts: []Shortcut{{Target: "y", Probability: 16}}},
			err:   ErrBadProbability,
		},
		{
			name:  "empty shortcut",
			entry: WordEntry{Word: "x", Shortcuts: []Shortcut{{Target: ""}}},
			err:   ErrEmptyWord,
		},
		{
			name:  "bigram probability",
			entry: WordEntry{Word: "x", Bigrams: []Bigram{{Target: "y", Probability: -1}}},
			err:   ErrBadProbability,
		},
		{name: "duplicate", entry: WordEntry{Word: "dup"}, err: ErrDuplicateWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, b.Add(WordEntry{Word: "dup"}))
			require.ErrorIs(t, b.Add(tt.entry), tt.err)
		})
	}
}

func TestBuilderMaxLengthWord(t *testing.T) {
	word := strings.Repeat("x", MaxWordLength)
	p := NewPolicy(buildBody(t, []WordEntry{{Word: word, Probability: 9}}))

	pos, err := p.TerminalNodePositionOfWord([]rune(word), false)
	require.NoError(t, err)
	cps, prob, err := p.CodePointsAndProbability(pos, MaxWordLength)
	require.NoError(t, err)
	require.Equal(t, word, string(cps))
	require.Equal(t, 9, prob)
}

func TestBuilderUnknownBigramTarget(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(WordEntry{Word: "x", Bigrams: []Bigram{{Target: "y", Probability: 1}}}))
	_, err := b.Build()
	require.ErrorIs(t, err, ErrUnknownTarget)

	// Targets may be added after the word that names them.
	require.NoError(t, b.Add(WordEntry{Word: "y"}))
	_, err = b.Build()
	require.NoError(t, err)
}
