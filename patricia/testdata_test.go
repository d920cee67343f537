package patricia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var fixtureWords = []WordEntry{
	{
		Word:        "hello",
		Probability: 100,
		Shortcuts: []Shortcut{
			{Target: "hi", Probability: ShortcutWhitelistProbability},
			{Target: "hey", Probability: 3},
		},
		Bigrams: []Bigram{
			{Target: "world", Probability: 7},
			{Target: "help", Probability: 2},
		},
	},
	{Word: "help", Probability: 90},
	{Word: "hell", Probability: 80, NotAWord: true},
	{Word: "world", Probability: 70, Bigrams: []Bigram{{Target: "hello", Probability: 4}}},
	{Word: "wor", Probability: 10, Blacklisted: true},
	{Word: "Zebra", Probability: 5},
	{Word: "über", Probability: 50},
	{Word: "日本", Probability: 40},
	{Word: "a", Probability: 1},
}

func buildBody(t *testing.T, words []WordEntry) []byte {
	t.Helper()
	b := NewBuilder()
	for _, w := range words {
		require.NoError(t, b.Add(w))
	}
	body, err := b.Build()
	require.NoError(t, err)
	return body
}

// fixturePolicy builds the fixture dictionary and returns the terminal
// position of every word in it.
func fixturePolicy(t *testing.T) (*Policy, map[string]int) {
	t.Helper()
	p := NewPolicy(buildBody(t, fixtureWords))
	positions := map[string]int{}
	for _, w := range fixtureWords {
		pos, err := p.TerminalNodePositionOfWord([]rune(w.Word), false)
		require.NoError(t, err)
		require.NotEqual(t, NotADictPos, pos, w.Word)
		positions[w.Word] = pos
	}
	return p, positions
}
