// BYZRA ⸻ internal/config/profile.go
// profile handling for catalog exclusions

package config

import (
	"fmt"
	"os"
	"sort"

	"copydetails/internal/catalog"

	"github.com/hashicorp/go-multierror"
	lua "github.com/yuin/gopher-lua"
)

const ProfileFile = "profile.lua"

// canonical property name -> copy it or not
type Profile map[string]bool

// names switched off, sorted
func (p Profile) Excluded() []string {
	var names []string
	for name, keep := range p {
		if !keep {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// LoadProfile runs profile.lua from explicit or the search paths and
// returns its table. No script means an empty profile.
func LoadProfile(explicit string) (Profile, string, error) {
	path, err := locate(explicit, ProfileFile)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Profile{}, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read profile: %w", err)
	}

	profile, err := ParseProfile(string(data))
	if err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return profile, path, nil
}

// evaluates a profile script
func ParseProfile(source string) (Profile, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("failed to execute profile Lua: %w", err)
	}

	result := L.Get(-1)
	if result.Type() != lua.LTTable {
		return nil, fmt.Errorf("profile Lua must return a table")
	}

	// convert Lua table 2 Go map
	profile := make(Profile)
	var errs *multierror.Error
	result.(*lua.LTable).ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTString {
			errs = multierror.Append(errs, fmt.Errorf("profile key %s is not a property name", k.String()))
			return
		}
		if v.Type() != lua.LTBool {
			errs = multierror.Append(errs, fmt.Errorf("profile value for %s must be true or false", k.String()))
			return
		}
		profile[k.String()] = lua.LVAsBool(v)
	})
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Apply returns cat without the excluded entries. Every name must belong
// to cat.
func (p Profile) Apply(cat *catalog.Catalog) (*catalog.Catalog, error) {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs *multierror.Error
	for _, name := range names {
		if _, ok := cat.ByName(name); !ok {
			errs = multierror.Append(errs, fmt.Errorf("unknown property %q", name))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if len(p.Excluded()) == 0 {
		return cat, nil
	}
	return cat.Without(p.Excluded()...)
}
