// BYZRA ⸻ internal/transfer/reader.go
// captures whitelisted values from the source store

package transfer

import (
	"copydetails/internal/catalog"
	"copydetails/internal/propstore"
	"copydetails/internal/util"
)

type Reader struct {
	base
}

// nil cat means catalog.Default, nil log discards
func NewReader(svc propstore.Service, cat *catalog.Catalog, log *util.Logger) *Reader {
	return &Reader{base{Service: svc, Catalog: cat, Log: log}}
}

// Read returns the captured slots and whether the source store opened and
// reported at least one property. Per-property failures are logged and
// leave the slot empty.
func (r *Reader) Read(path string) (Slots, bool) {
	cat := r.catalog()
	log := r.log()
	slots := NewSlots(cat)

	st, err := r.Service.Open(path, propstore.ReadOnly)
	if err != nil {
		log.Errorf("Cannot get property store for file: %s", path)
		log.Debugf("  %v", err)
		return slots, false
	}
	defer st.Close()

	n, err := st.Count()
	if err != nil {
		log.Error("Cannot get number of properties")
		log.Debugf("  %v", err)
		return slots, false
	}
	log.Debugf("%s: %d properties", path, n)

	for i := 0; i < n; i++ {
		key, err := st.KeyAt(i)
		if err != nil {
			log.Errorf("Cannot get property key: %d", i)
			log.Debugf("  %v", err)
			continue
		}

		idx, ok := cat.Index(key)
		if !ok || !slots[idx].IsEmpty() {
			continue
		}

		v, err := st.Value(key)
		if err != nil {
			r.report("Cannot read existing", key, err)
			continue
		}
		slots[idx] = v
		log.Debugf("  read %s = %s", cat.Entry(idx).Name, v)
	}

	return slots, n > 0
}
