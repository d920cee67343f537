package patricia

import "errors"

// Node flags.
const (
	FlagChildrenAddressTypeMask   uint8 = 0xC0
	FlagChildrenAddressNone       uint8 = 0x00
	FlagChildrenAddressOneByte    uint8 = 0x40
	FlagChildrenAddressTwoBytes   uint8 = 0x80
	FlagChildrenAddressThreeBytes uint8 = 0xC0
	FlagHasMultipleChars          uint8 = 0x20
	FlagIsTerminal                uint8 = 0x10
	FlagHasShortcutTargets        uint8 = 0x08
	FlagHasBigrams                uint8 = 0x04
	FlagIsNotAWord                uint8 = 0x02
	FlagIsBlacklisted             uint8 = 0x01
	childrenAddressTypeShift            = 6
)

// Shortcut and bigram entry flags.
const (
	FlagAttributeHasNext         uint8 = 0x80
	FlagAttributeOffsetNegative  uint8 = 0x40
	FlagAttributeAddressTypeMask uint8 = 0x30
	FlagAttributeProbabilityMask uint8 = 0x0F
	attributeAddressTypeShift          = 4
)

const (
	// NotADictPos is returned where a position is absent.
	NotADictPos = -1
	// NotAProbability is returned where a node has no probability.
	NotAProbability = -1

	// MaxWordLength bounds the code points of a word and of any one label.
	MaxWordLength = 48
	// MaxProbability is the largest unigram probability a node stores.
	MaxProbability = 0xFF
	// MaxAttributeProbability is the largest shortcut or bigram probability.
	MaxAttributeProbability = 0x0F
	// ShortcutWhitelistProbability marks a shortcut as a whitelisted correction.
	ShortcutWhitelistProbability = 0x0F

	// MaxGroupCount is the largest number of siblings in one node array.
	MaxGroupCount = 0x7FFF

	minimalOneByteCodePoint = 0x20
	codePointTerminator     = 0x1F
	largeGroupCountFlag     = 0x80
	shortcutListSizeBytes   = 2
	maxOffset               = 0xFFFFFF
)

var (
	ErrCorrupt           = errors.New("patricia: dictionary is corrupt")
	ErrNotANode          = errors.New("patricia: position is not a node")
	ErrNotTerminal       = errors.New("patricia: node is not terminal")
	ErrCodePointOverflow = errors.New("patricia: code points exceed the requested capacity")

	ErrEmptyWord      = errors.New("patricia: empty word")
	ErrWordTooLong    = errors.New("patricia: word too long")
	ErrBadCodePoint   = errors.New("patricia: invalid code point")
	ErrDuplicateWord  = errors.New("patricia: duplicate word")
	ErrBadProbability = errors.New("patricia: probability out of range")
	ErrUnknownTarget  = errors.New("patricia: bigram target is not a word in the dictionary")
	ErrTooLarge       = errors.New("patricia: dictionary exceeds the format limits")
)
