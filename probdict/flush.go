package probdict

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReadTableFile loads a table previously written by FlushToFile.
func ReadTableFile(path string, hasHistoricalInfo bool, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("probdict: cannot read %s: %w", path, err)
	}
	return LoadTable(data, hasHistoricalInfo, opts...)
}

// persistable returns exactly Size() records. When stale records trail the
// logical end, a compacted copy is built rather than persisting garbage.
func (t *Table) persistable() ([]byte, error) {
	if t.invalid {
		return nil, ErrTableInvalid
	}
	if t.EntryPos(t.size) >= t.buf.TailPosition() {
		return t.buf.Bytes(), nil
	}

	compact := NewTable(t.hasHistoricalInfo,
		WithLogger(t.log), WithMaxExtension(t.EntryPos(t.size)))
	for id := 0; id < t.size; id++ {
		if err := compact.Set(id, t.Get(id)); err != nil {
			t.log.Infof("probdict: cannot compact entry for flush: id=%d: %v", id, err)
			return nil, err
		}
	}
	return compact.buf.Bytes(), nil
}

// WriteTo writes the persisted form of the table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	data, err := t.persistable()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// FlushToFile persists the table to path. The file is replaced atomically:
// the content is written to a uniquely named sibling and then renamed.
func (t *Table) FlushToFile(path string) (err error) {
	data, err := t.persistable()
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("probdict: cannot create %s: %w", tmp, err)
	}
	if _, err = f.Write(data); err != nil {
		return errors.Join(fmt.Errorf("probdict: cannot write %s: %w", tmp, err), f.Close())
	}
	if err = f.Sync(); err != nil {
		return errors.Join(fmt.Errorf("probdict: cannot sync %s: %w", tmp, err), f.Close())
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("probdict: cannot close %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("probdict: cannot replace %s: %w", path, err)
	}
	t.log.Debugf("probdict: flushed %d entries (%d bytes) to %s", t.size, len(data), path)
	return nil
}
