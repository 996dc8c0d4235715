// BYZRA ⸻ internal/propkey/key.go
// composite property identity: format GUID + numeric id

package propkey

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// 128-bit format identifier
//
// uuid keeps the canonical layout (Data1, Data2, Data3 big-endian, then Data4),
// so byte order equals field-by-field numeric order.
type GUID = uuid.UUID

// identity of one property: format group + id inside the group
type Key struct {
	Format GUID
	ID     uint32
}

// parses a GUID, panics on malformed input (static tables only)
func MustGUID(s string) GUID {
	return uuid.MustParse(s)
}

// parses a GUID from its textual form, braces optional
func ParseGUID(s string) (GUID, error) {
	g, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("invalid format id %q: %w", s, err)
	}
	return g, nil
}

// orders two format identifiers
func CompareGUID(a, b GUID) int {
	return bytes.Compare(a[:], b[:])
}

// total order: format first, id second
func Compare(a, b Key) int {
	if c := CompareGUID(a.Format, b.Format); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Windows-style textual form, e.g. {56A3372E-CE9C-11D2-9F0E-006097C686F6} 5
func (k Key) String() string {
	return fmt.Sprintf("{%s} %d", fmtGUID(k.Format), k.ID)
}

func fmtGUID(g GUID) string {
	return strings.ToUpper(g.String())
}
