// BYZRA ⸻ internal/transfer/verify.go
// re-reads the destination and compares it with the captured slots

package transfer

import (
	"errors"
	"fmt"

	"copydetails/internal/propstore"
)

// results of a destination verification
type VerificationResult struct {
	Checked    int
	Missing    []string
	Mismatched []string
}

func (r *VerificationResult) Success() bool {
	return len(r.Missing) == 0 && len(r.Mismatched) == 0
}

// Verify opens path read-only and checks that every populated slot arrived.
// Values match when they are equal or render the same, since backends may
// widen integer kinds.
func (r *Reader) Verify(path string, want Slots) (*VerificationResult, error) {
	cat := r.catalog()
	if err := checkSlots(cat, want); err != nil {
		return nil, err
	}

	st, err := r.Service.Open(path, propstore.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("cannot open property store for verification: %w", err)
	}
	defer st.Close()

	result := &VerificationResult{}
	for i, v := range want {
		if v.IsEmpty() {
			continue
		}
		entry := cat.Entry(i)
		result.Checked++

		got, err := st.Value(entry.Key)
		switch {
		case errors.Is(err, propstore.ErrNotFound):
			result.Missing = append(result.Missing, entry.Name)
		case err != nil:
			result.Missing = append(result.Missing, entry.Name)
			r.log().Debugf("  %s: %v", entry.Name, err)
		case !v.Equal(got) && v.String() != got.String():
			result.Mismatched = append(result.Mismatched, entry.Name)
		}
	}
	return result, nil
}
