package dictionary

import (
	"fmt"
	"os"

	"github.com/forestrie/go-wordtrie/header"
	"github.com/forestrie/go-wordtrie/patricia"
)

// WriteTrieFile builds the trie held by b and writes it, prefixed by h, to
// path.
func WriteTrieFile(path string, h header.HeaderV1, b *patricia.Builder) error {
	body, err := b.Build()
	if err != nil {
		return err
	}
	data, err := header.EncodeV1(h)
	if err != nil {
		return err
	}
	data = append(data, body...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dictionary: cannot write %s: %w", path, err)
	}
	return nil
}

// readTrieFile returns the header and trie body stored at path.
func readTrieFile(path string) (header.HeaderV1, []byte, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return header.HeaderV1{}, nil, fmt.Errorf("dictionary: cannot read %s: %w", path, err)
	}
	h, body, ok, err := header.DecodeV1(blob)
	if err != nil {
		return header.HeaderV1{}, nil, fmt.Errorf("dictionary: %s: %w", path, err)
	}
	if !ok {
		return header.HeaderV1{}, nil, fmt.Errorf("%w: %s", ErrNoHeader, path)
	}
	return h, body, nil
}
