package probdict

// HistoricalInfo is the per word usage triple kept by dictionaries that
// adapt to the user over time.
type HistoricalInfo struct {
	Timestamp int
	Level     int
	Count     int
}

// DefaultHistoricalInfo returns historical info that has never been stamped.
func DefaultHistoricalInfo() HistoricalInfo {
	return HistoricalInfo{Timestamp: NotATimestamp}
}

// IsValid reports whether the info has been stamped.
func (h HistoricalInfo) IsValid() bool {
	return h.Timestamp != NotATimestamp
}

// Entry is the decoded content of one probability record.
type Entry struct {
	Flags       uint8
	Probability int
	Historical  HistoricalInfo
}

// DefaultEntry is both the gap filler written by Set and the absent value
// returned by Get.
func DefaultEntry() Entry {
	return Entry{
		Flags:       0,
		Probability: NotAProbability,
		Historical:  DefaultHistoricalInfo(),
	}
}

// HasProbability reports whether a probability has been assigned.
func (e Entry) HasProbability() bool {
	return e.Probability != NotAProbability
}

// IsNotAWord reports whether the entry is flagged as not a word.
func (e Entry) IsNotAWord() bool {
	return e.Flags&FlagNotAWord != 0
}

// IsBlacklisted reports whether the entry is flagged as blacklisted.
func (e Entry) IsBlacklisted() bool {
	return e.Flags&FlagBlacklisted != 0
}
