package dictionary

import (
	"path/filepath"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-wordtrie/header"
	"github.com/forestrie/go-wordtrie/patricia"
	"github.com/stretchr/testify/require"
)

var testWords = []patricia.WordEntry{
	{
		Word:        "hello",
		Probability: 100,
		Shortcuts:   []patricia.Shortcut{{Target: "hi", Probability: patricia.ShortcutWhitelistProbability}},
		Bigrams:     []patricia.Bigram{{Target: "world", Probability: 7}},
	},
	{Word: "help", Probability: 90},
	{Word: "hell", Probability: 80, NotAWord: true},
	{Word: "world", Probability: 70},
	{Word: "wor", Probability: 10, Blacklisted: true},
	{Word: "über", Probability: 50},
}

type testContext struct {
	t   *testing.T
	cfg Config
}

// newTestContext writes the test dictionary into a fresh directory. The
// probability file does not exist until the first Flush.
func newTestContext(t *testing.T, historical bool) *testContext {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig(filepath.Join(dir, "main.dict"), filepath.Join(dir, "main.prob"))

	b := patricia.NewBuilder()
	for _, w := range testWords {
		require.NoError(t, b.Add(w))
	}
	h := header.HeaderV1{
		HasHistoricalInfo: historical,
		Attributes:        map[string]string{header.AttrLocale: "en_US", header.AttrVersion: "1"},
	}
	require.NoError(t, WriteTrieFile(cfg.Trie, h, b))
	return &testContext{t: t, cfg: cfg}
}

func (c *testContext) open() *Dictionary {
	c.t.Helper()
	d, err := Open(logger.Sugar, c.cfg)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = d.Close() })
	return d
}

func (c *testContext) mustLookup(d *Dictionary, word string) WordProperty {
	c.t.Helper()
	prop, ok, err := d.Lookup(word, false)
	require.NoError(c.t, err)
	require.True(c.t, ok, word)
	return prop
}
