package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/forestrie/go-wordtrie/bloom"
	"github.com/forestrie/go-wordtrie/extbuf"
	"github.com/forestrie/go-wordtrie/header"
	"github.com/forestrie/go-wordtrie/patricia"
	"github.com/forestrie/go-wordtrie/probdict"
)

// Dictionary is an open dictionary. It is safe for concurrent use.
type Dictionary struct {
	log    logger.Logger
	cfg    Config
	header header.HeaderV1
	policy *patricia.Policy

	// filter is a bloom region over every stored word, or nil.
	filter []byte

	// cache maps a lookup key to its terminal position. The trie never
	// changes, so entries never go stale.
	cache *ristretto.Cache[string, int]

	// writeMu serializes UpdateEntry, RunGC and Flush.
	writeMu sync.Mutex
	// mu excludes readers while a record is written or a compacted table
	// is published. table and index always change together under it.
	mu    sync.RWMutex
	table atomic.Pointer[probdict.Table]
	index atomic.Pointer[terminalIndex]

	closed atomic.Bool
}

// Open reads the trie file named by cfg and the probability table beside it.
// A missing probability file opens an empty table.
func Open(log logger.Logger, cfg Config) (*Dictionary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, body, err := readTrieFile(cfg.Trie)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		log:    log,
		cfg:    cfg,
		header: h,
		policy: patricia.NewPolicy(body, patricia.WithLogger(log)),
	}

	var words [][]rune
	index, err := buildTerminalIndex(d.policy, func(word []rune) error {
		if cfg.Filter.BitsPerWord > 0 {
			words = append(words, slices.Clone(word))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dictionary: %s: %w", cfg.Trie, err)
	}
	d.index.Store(index)

	if len(words) > 0 {
		if d.filter, err = newWordFilter(words, cfg.Filter); err != nil {
			return nil, err
		}
	}

	table, err := probdict.ReadTableFile(cfg.Probabilities, h.HasHistoricalInfo, d.tableOptions(0)...)
	if errors.Is(err, fs.ErrNotExist) {
		table, err = probdict.NewTable(h.HasHistoricalInfo, d.tableOptions(0)...), nil
	}
	if err != nil {
		return nil, err
	}
	d.table.Store(table)

	if cfg.Cache.MaxWords > 0 {
		d.cache, err = ristretto.NewCache(&ristretto.Config[string, int]{
			NumCounters: cfg.Cache.MaxWords * 10,
			MaxCost:     cfg.Cache.MaxWords,
			BufferItems: 64,
			// Cost counts words, not bytes.
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("dictionary: cannot create lookup cache: %w", err)
		}
	}

	log.Infof("dictionary: opened %s: words=%d, records=%d, historical=%v",
		cfg.Trie, index.Len(), table.Size(), h.HasHistoricalInfo)
	return d, nil
}

func newWordFilter(words [][]rune, cfg FilterConfig) ([]byte, error) {
	region, err := bloom.NewRegionV1(uint64(len(words)), cfg.BitsPerWord, cfg.Hashes)
	if err != nil {
		return nil, fmt.Errorf("dictionary: cannot size word filter: %w", err)
	}
	for _, w := range words {
		if err := bloom.InsertV1(region, []byte(string(w))); err != nil {
			return nil, err
		}
	}
	return region, nil
}

// tableOptions returns the options for a table that must hold reserved
// bytes and still have room to grow.
func (d *Dictionary) tableOptions(reserved int) []probdict.Option {
	growth := d.cfg.Table.MaxGrowth
	if growth == 0 {
		growth = extbuf.DefaultMaxExtension
	}
	return []probdict.Option{
		probdict.WithLogger(d.log),
		probdict.WithMaxExtension(reserved + growth),
	}
}

func (d *Dictionary) Header() header.HeaderV1 {
	return d.header
}

// Policy returns the navigator over the trie body.
func (d *Dictionary) Policy() *patricia.Policy {
	return d.policy
}

// TerminalCount returns the number of terminal ids in use, including ids
// freed by a compaction.
func (d *Dictionary) TerminalCount() int {
	return d.index.Load().Len()
}

// lookupKey returns the string a trie descent for word compares against the
// stored words, so it can key both the filter and the cache.
func lookupKey(word string, forceLowerCase bool) string {
	if forceLowerCase {
		return strings.Map(unicode.ToLower, word)
	}
	if !utf8.ValidString(word) {
		// as the descent sees it, one replacement rune per bad byte
		return string([]rune(word))
	}
	return word
}

// position returns the terminal position of word, or NotADictPos.
func (d *Dictionary) position(word string, forceLowerCase bool) (int, error) {
	key := lookupKey(word, forceLowerCase)
	if d.cache != nil {
		if pos, ok := d.cache.Get(key); ok {
			return pos, nil
		}
	}
	if d.filter != nil {
		maybe, err := bloom.MaybeContainsV1(d.filter, []byte(key))
		if err != nil {
			return patricia.NotADictPos, err
		}
		if !maybe {
			return patricia.NotADictPos, nil
		}
	}
	pos, err := d.policy.TerminalNodePositionOfWord([]rune(word), forceLowerCase)
	if err != nil {
		return patricia.NotADictPos, err
	}
	if d.cache != nil {
		d.cache.Set(key, pos, 1)
	}
	return pos, nil
}

// Lookup returns the properties of word. ok is false if the dictionary does
// not contain it.
func (d *Dictionary) Lookup(word string, forceLowerCase bool) (WordProperty, bool, error) {
	if d.closed.Load() {
		return WordProperty{}, false, ErrClosed
	}
	pos, err := d.position(word, forceLowerCase)
	if err != nil || pos == patricia.NotADictPos {
		return WordProperty{}, false, err
	}
	prop, err := d.property(pos)
	if err != nil {
		return WordProperty{}, false, err
	}
	return prop, true, nil
}

// LookupID returns the properties of the word holding terminal id.
func (d *Dictionary) LookupID(id int) (WordProperty, error) {
	if d.closed.Load() {
		return WordProperty{}, ErrClosed
	}
	pos, ok := d.index.Load().Pos(id)
	if !ok {
		return WordProperty{}, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	return d.property(pos)
}

func (d *Dictionary) property(pos int) (WordProperty, error) {
	n, err := d.policy.ReadNode(pos)
	if err != nil {
		return WordProperty{}, err
	}
	cps, prob, err := d.policy.CodePointsAndProbability(pos, patricia.MaxWordLength)
	if err != nil {
		return WordProperty{}, err
	}
	prop := WordProperty{
		Word:        string(cps),
		Pos:         pos,
		TerminalID:  -1,
		Probability: prob,
		NotAWord:    n.IsNotAWord(),
		Blacklisted: n.IsBlacklisted(),
		Historical:  probdict.DefaultHistoricalInfo(),
	}

	d.mu.RLock()
	if id, ok := d.index.Load().ID(pos); ok {
		prop.TerminalID = id
		if e, ok := d.table.Load().Lookup(id); ok && e.HasProbability() {
			prop.Probability = e.Probability
			prop.NotAWord = e.IsNotAWord()
			prop.Blacklisted = e.IsBlacklisted()
			prop.Historical = e.Historical
		}
	}
	d.mu.RUnlock()

	if n.HasShortcutTargets() {
		for s, err := range d.policy.ShortcutsPolicy().Targets(n.ShortcutPos) {
			if err != nil {
				return WordProperty{}, err
			}
			prop.Shortcuts = append(prop.Shortcuts, ShortcutProperty{
				Target:      string(s.CodePoints),
				Probability: s.Probability,
				Whitelist:   s.IsWhitelist(),
			})
		}
	}
	if n.HasBigrams() {
		for b, err := range d.policy.BigramsPolicy().Entries(n.BigramsPos) {
			if err != nil {
				return WordProperty{}, err
			}
			target, _, err := d.policy.CodePointsAndProbability(b.TargetPos, patricia.MaxWordLength)
			if err != nil {
				return WordProperty{}, err
			}
			prop.Bigrams = append(prop.Bigrams, BigramProperty{Word: string(target), Probability: b.Probability})
		}
	}
	return prop, nil
}

// UpdateEntry writes the probability record of word. A word that has no
// terminal id, because a compaction dropped it, is given the next free id.
func (d *Dictionary) UpdateEntry(word string, e probdict.Entry) error {
	if d.closed.Load() {
		return ErrClosed
	}
	pos, err := d.position(word, false)
	if err != nil {
		return err
	}
	if pos == patricia.NotADictPos {
		return fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	index := d.index.Load()
	id, ok := index.ID(pos)
	var next *terminalIndex
	if !ok {
		next, id = index.withID(pos)
	}
	return d.set(id, e, next)
}

// UpdateEntryByID writes the probability record of terminal id.
func (d *Dictionary) UpdateEntryByID(id int, e probdict.Entry) error {
	if d.closed.Load() {
		return ErrClosed
	}
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	if _, ok := d.index.Load().Pos(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	return d.set(id, e, nil)
}

// set writes one record and, if next is not nil, publishes it as the index.
// The caller holds writeMu.
func (d *Dictionary) set(id int, e probdict.Entry, next *terminalIndex) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.table.Load().Set(id, e); err != nil {
		return err
	}
	if next != nil {
		d.index.Store(next)
	}
	return nil
}

// Entry returns the stored record of terminal id.
func (d *Dictionary) Entry(id int) (probdict.Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.table.Load().Lookup(id)
}

// CompactionMap returns a remap that keeps the ids for which keep returns
// true, renumbered densely in ascending order. A nil keep keeps every
// assigned id. keep is called with the read lock held and must not call
// methods that write.
func (d *Dictionary) CompactionMap(keep func(id int, e probdict.Entry) bool) probdict.TerminalIDMap {
	d.mu.RLock()
	defer d.mu.RUnlock()

	index := d.index.Load()
	table := d.table.Load()
	remap := probdict.TerminalIDMap{}
	for id := range index.Len() {
		if _, ok := index.Pos(id); !ok {
			continue
		}
		if keep != nil && !keep(id, table.Get(id)) {
			continue
		}
		remap[id] = len(remap)
	}
	return remap
}

// RunGC rebuilds the probability table under remap and renumbers the
// terminal index to match.
//
// The new table is built beside the published one, so lookups carry on
// against the old table until the swap. If the rebuild fails the published
// table and index are unchanged.
func (d *Dictionary) RunGC(remap probdict.TerminalIDMap) error {
	if d.closed.Load() {
		return ErrClosed
	}
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	src := d.table.Load()
	next, err := d.index.Load().remap(remap)
	if err != nil {
		return err
	}

	fresh := probdict.NewTable(src.HasHistoricalInfo(), d.tableOptions(src.EntryPos(tableSize(remap)))...)
	if err := fresh.RunGC(remap, src); err != nil {
		return err
	}

	d.mu.Lock()
	d.table.Store(fresh)
	d.index.Store(next)
	d.mu.Unlock()

	d.log.Infof("dictionary: gc: records %d -> %d", src.Size(), fresh.Size())
	return nil
}

// Flush writes the probability table to its file.
func (d *Dictionary) Flush() error {
	if d.closed.Load() {
		return ErrClosed
	}
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	table := d.table.Load()
	if err := table.FlushToFile(d.cfg.Probabilities); err != nil {
		d.log.Infof("dictionary: flush %s: %v", d.cfg.Probabilities, err)
		return err
	}
	d.log.Debugf("dictionary: flushed %d records to %s", table.Size(), d.cfg.Probabilities)
	return nil
}

// Close releases the lookup cache. Unflushed updates are discarded.
func (d *Dictionary) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if d.cache != nil {
		d.cache.Close()
	}
	return nil
}
