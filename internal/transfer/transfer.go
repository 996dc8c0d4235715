// BYZRA ⸻ internal/transfer/transfer.go
// moves whitelisted properties from one file's store to another's

package transfer

import (
	"errors"
	"fmt"

	"copydetails/internal/catalog"
	"copydetails/internal/propkey"
	"copydetails/internal/propstore"
	"copydetails/internal/util"
)

// destination store could not be (re)opened; remaining writes were skipped
var ErrStoreUnavailable = errors.New("property store unavailable")

// one value per catalog entry, parallel to the catalog order
type Slots []propstore.Value

// all-empty slots sized for cat
func NewSlots(cat *catalog.Catalog) Slots {
	return make(Slots, cat.Len())
}

// number of populated slots
func (s Slots) Populated() int {
	n := 0
	for _, v := range s {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

// shared by Reader and Writer
type base struct {
	Service propstore.Service
	Catalog *catalog.Catalog
	Log     *util.Logger
}

func (b base) catalog() *catalog.Catalog {
	if b.Catalog != nil {
		return b.Catalog
	}
	return catalog.Default
}

func (b base) log() *util.Logger {
	if b.Log != nil {
		return b.Log
	}
	return util.Discard()
}

// "<prefix> property: <name>", or "<prefix> unknown property" when the
// service cannot name the key
func (b base) report(prefix string, key propkey.Key, cause error) {
	log := b.log()
	if name, err := b.Service.Name(key); err == nil && name != "" {
		log.Errorf("%s property: %s", prefix, name)
	} else {
		log.Errorf("%s unknown property", prefix)
	}
	log.Debugf("  %s: %v", key, cause)
}

func checkSlots(cat *catalog.Catalog, slots Slots) error {
	if len(slots) != cat.Len() {
		return fmt.Errorf("slot count %d does not match catalog size %d", len(slots), cat.Len())
	}
	return nil
}
