package dictionary

import (
	"errors"

	"github.com/forestrie/go-wordtrie/probdict"
)

var (
	ErrClosed      = errors.New("dictionary: closed")
	ErrNoHeader    = errors.New("dictionary: trie file has no header")
	ErrUnknownWord = errors.New("dictionary: word is not in the dictionary")
	ErrUnknownID   = errors.New("dictionary: terminal id is not assigned")
	ErrBadRemap    = errors.New("dictionary: terminal id remap is invalid")
	ErrConfig      = errors.New("dictionary: invalid configuration")
)

// WordProperty describes one word as currently known to the dictionary.
type WordProperty struct {
	Word string
	// Pos is the terminal node position in the trie body.
	Pos int
	// TerminalID is the word's record id, or -1 if it has none.
	TerminalID int

	// Probability comes from the probability table when it holds one for the
	// word, and from the trie otherwise.
	Probability int
	NotAWord    bool
	Blacklisted bool
	Historical  probdict.HistoricalInfo

	Shortcuts []ShortcutProperty
	Bigrams   []BigramProperty
}

type ShortcutProperty struct {
	Target      string
	Probability int
	Whitelist   bool
}

type BigramProperty struct {
	Word        string
	Probability int
}
