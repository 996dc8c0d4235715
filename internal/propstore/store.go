// BYZRA ⸻ internal/propstore/store.go
// property store service boundary

package propstore

import (
	"errors"

	"copydetails/internal/propkey"
)

// access mode for Open
type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

func (m Mode) String() string {
	if m == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

var (
	ErrNotFound    = errors.New("property not found")
	ErrCommitted   = errors.New("property store already committed")
	ErrReadOnly    = errors.New("property store opened read-only")
	ErrUnsupported = errors.New("property value not supported by this store")
	ErrClosed      = errors.New("property store closed")
)

// metadata service keyed by file path
type Service interface {
	// opens the property store attached to path
	Open(path string, mode Mode) (Store, error)

	// resolves a key to its canonical name, best effort
	Name(key propkey.Key) (string, error)
}

// property store of one file
//
// After Commit the store can no longer be used; reopen it to make further
// changes.
type Store interface {
	// number of properties present
	Count() (int, error)

	// key at position i, 0 <= i < Count()
	KeyAt(i int) (propkey.Key, error)

	Value(key propkey.Key) (Value, error)

	// stages a change, persisted by Commit
	SetValue(key propkey.Key, v Value) error

	Commit() error

	Close() error
}
