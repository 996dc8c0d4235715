// BYZRA ⸻ internal/catalog/catalog.go
// whitelist of transferable property keys, grouped by format id

package catalog

import (
	"fmt"
	"slices"

	"copydetails/internal/propkey"

	"github.com/hashicorp/go-multierror"
)

// one whitelisted property
type Entry struct {
	Key propkey.Key

	// canonical property name, e.g. System.Media.Year
	Name string

	// exiftool tag carrying the property, empty when exiftool has no equivalent
	Tag string
}

// contiguous run of entries sharing one format id
type Group struct {
	Format propkey.GUID
	Start  int // inclusive
	End    int // exclusive
}

// immutable, validated whitelist
type Catalog struct {
	entries []Entry
	groups  []Group
	index   map[propkey.Key]int
	names   map[string]int
}

// sorts, groups and validates entries
func Build(entries []Entry) (*Catalog, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return propkey.Compare(a.Key, b.Key)
	})

	var errs *multierror.Error

	c := &Catalog{
		entries: sorted,
		index:   make(map[propkey.Key]int, len(sorted)),
		names:   make(map[string]int, len(sorted)),
	}

	for i, e := range sorted {
		if prev, ok := c.index[e.Key]; ok {
			errs = multierror.Append(errs, fmt.Errorf("duplicate key %s (%s, %s)", e.Key, sorted[prev].Name, e.Name))
			continue
		}
		c.index[e.Key] = i

		if e.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("key %s has no name", e.Key))
			continue
		}
		if _, ok := c.names[e.Name]; ok {
			errs = multierror.Append(errs, fmt.Errorf("duplicate name %s", e.Name))
			continue
		}
		c.names[e.Name] = i
	}

	for i := 0; i < len(sorted); {
		g := Group{Format: sorted[i].Key.Format, Start: i}
		for i < len(sorted) && sorted[i].Key.Format == g.Format {
			i++
		}
		g.End = i
		c.groups = append(c.groups, g)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	if err := c.verify(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return c, nil
}

// Build, panicking on error; for static tables
func MustBuild(entries []Entry) *Catalog {
	c, err := Build(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// checks the ordering and partition invariants the merge scan relies on
func (c *Catalog) verify() error {
	var errs *multierror.Error

	next := 0
	for gi, g := range c.groups {
		if g.Start != next {
			errs = multierror.Append(errs, fmt.Errorf("group %d starts at %d, expected %d", gi, g.Start, next))
		}
		if g.End <= g.Start {
			errs = multierror.Append(errs, fmt.Errorf("group %d is empty", gi))
		}
		if gi > 0 && propkey.CompareGUID(c.groups[gi-1].Format, g.Format) >= 0 {
			errs = multierror.Append(errs, fmt.Errorf("group %d out of order", gi))
		}
		for i := g.Start; i < g.End && i < len(c.entries); i++ {
			if c.entries[i].Key.Format != g.Format {
				errs = multierror.Append(errs, fmt.Errorf("entry %d outside its group", i))
			}
			if i > g.Start && c.entries[i-1].Key.ID >= c.entries[i].Key.ID {
				errs = multierror.Append(errs, fmt.Errorf("entry %d out of order", i))
			}
		}
		next = g.End
	}
	if next != len(c.entries) {
		errs = multierror.Append(errs, fmt.Errorf("groups cover %d of %d entries", next, len(c.entries)))
	}

	return errs.ErrorOrNil()
}

// number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// entry at flat index i
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// flat sorted entries (copy)
func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

// format groups in ascending format order (copy)
func (c *Catalog) Groups() []Group {
	return slices.Clone(c.groups)
}

// finds the flat index of key with a merge scan over the sorted groups
func (c *Catalog) Lookup(key propkey.Key) (int, bool) {
	for _, g := range c.groups {
		cmp := propkey.CompareGUID(key.Format, g.Format)
		if cmp > 0 {
			continue
		}
		if cmp < 0 {
			return 0, false
		}

		for i := g.Start; i < g.End; i++ {
			id := c.entries[i].Key.ID
			if key.ID > id {
				continue
			}
			if key.ID < id {
				return 0, false
			}
			return i, true
		}
		return 0, false
	}
	return 0, false
}

// finds the flat index of key with a direct map lookup
func (c *Catalog) Index(key propkey.Key) (int, bool) {
	i, ok := c.index[key]
	return i, ok
}

// canonical name of a whitelisted key
func (c *Catalog) Name(key propkey.Key) (string, bool) {
	i, ok := c.index[key]
	if !ok {
		return "", false
	}
	return c.entries[i].Name, true
}

// flat index of the entry with the given canonical name
func (c *Catalog) ByName(name string) (int, bool) {
	i, ok := c.names[name]
	return i, ok
}

// rebuilds the catalog without the named entries
func (c *Catalog) Without(names ...string) (*Catalog, error) {
	drop := make(map[int]bool, len(names))
	var errs *multierror.Error
	for _, n := range names {
		i, ok := c.names[n]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("unknown property %s", n))
			continue
		}
		drop[i] = true
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	kept := make([]Entry, 0, len(c.entries)-len(drop))
	for i, e := range c.entries {
		if !drop[i] {
			kept = append(kept, e)
		}
	}
	return Build(kept)
}
