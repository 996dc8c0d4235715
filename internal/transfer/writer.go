// BYZRA ⸻ internal/transfer/writer.go
// writes captured values to the destination, one commit per property

package transfer

import (
	"fmt"

	"copydetails/internal/catalog"
	"copydetails/internal/propstore"
	"copydetails/internal/util"
)

type Writer struct {
	base
}

// nil cat means catalog.Default, nil log discards
func NewWriter(svc propstore.Service, cat *catalog.Catalog, log *util.Logger) *Writer {
	return &Writer{base{Service: svc, Catalog: cat, Log: log}}
}

// Write walks the catalog group by group and, for every populated slot,
// opens the destination store, sets the value and commits. A store that
// cannot be opened stops the walk with ErrStoreUnavailable; properties
// committed before that stay. Set and commit failures are logged and the
// walk continues.
func (w *Writer) Write(path string, slots Slots) error {
	cat := w.catalog()
	log := w.log()

	if err := checkSlots(cat, slots); err != nil {
		return err
	}

	written := 0
	for _, g := range cat.Groups() {
		for i := g.Start; i < g.End; i++ {
			if slots[i].IsEmpty() {
				continue
			}
			entry := cat.Entry(i)

			st, err := w.Service.Open(path, propstore.ReadWrite)
			if err != nil {
				log.Errorf("Cannot get property store for file: %s", path)
				log.Debugf("  %v", err)
				return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, path, err)
			}

			if w.writeOne(st, entry, slots[i]) {
				written++
			}
		}
	}

	log.Debugf("%s: %d properties written", path, written)
	return nil
}

// sets and commits a single value; the store is closed on return
func (w *Writer) writeOne(st propstore.Store, entry catalog.Entry, v propstore.Value) bool {
	defer st.Close()

	if err := st.SetValue(entry.Key, v); err != nil {
		w.report("Cannot write", entry.Key, err)
		return false
	}
	if err := st.Commit(); err != nil {
		w.report("Cannot commit", entry.Key, err)
		return false
	}
	w.log().Debugf("  wrote %s = %s", entry.Name, v)
	return true
}
