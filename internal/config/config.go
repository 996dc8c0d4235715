// BYZRA ⸻ internal/config/config.go
// config loading & management

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"copydetails/internal/util"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

const ConfigFile = "copydetails.toml"

// metadata backends
const (
	BackendAuto     = "auto"
	BackendExiftool = "exiftool"
	BackendSidecar  = "sidecar"
)

type Config struct {
	// auto, exiftool or sidecar
	Backend string `toml:"backend"`

	Exiftool struct {
		Path string `toml:"path"`
	} `toml:"exiftool"`

	Sidecar struct {
		Suffix string `toml:"suffix"`
	} `toml:"sidecar"`

	Colors util.Palette `toml:"colors"`

	// file the values came from, empty for defaults
	Source string `toml:"-"`
}

// returns default config values
func Default() *Config {
	cfg := &Config{Backend: BackendAuto}
	cfg.Exiftool.Path = "exiftool"
	cfg.Sidecar.Suffix = ".props.toml"
	cfg.Colors = util.DefaultPalette
	return cfg
}

// search common locations for name
func SearchPaths(name string) []string {
	return []string{
		"./" + name,
		filepath.Join("config", name),
		filepath.Join(os.Getenv("HOME"), ".copydetails", "config", name),
	}
}

// first existing path; explicit must exist when given
func locate(explicit, name string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return explicit, nil
	}
	for _, path := range SearchPaths(name) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Load reads copydetails.toml from explicit or the search paths. No file
// means defaults; a broken file is an error.
func Load(explicit string) (*Config, error) {
	path, err := locate(explicit, ConfigFile)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = path

	var result *multierror.Error
	for _, key := range md.Undecoded() {
		result = multierror.Append(result, fmt.Errorf("unknown key %q", key.String()))
	}
	if err := cfg.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// checks every field, reporting all problems at once
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.Backend {
	case BackendAuto, BackendExiftool, BackendSidecar:
	default:
		result = multierror.Append(result, fmt.Errorf("backend must be auto, exiftool or sidecar, got %q", c.Backend))
	}

	if c.Exiftool.Path == "" {
		result = multierror.Append(result, errors.New("exiftool.path is empty"))
	}

	suffix := c.Sidecar.Suffix
	if !strings.HasPrefix(suffix, ".") || len(suffix) < 2 || strings.ContainsAny(suffix, `/\`) {
		result = multierror.Append(result, fmt.Errorf("sidecar.suffix %q must start with a dot and name no directory", suffix))
	}

	colors := map[string]string{
		"chrm": c.Colors.CHRM, "heat": c.Colors.HEAT, "hotp": c.Colors.HOTP,
		"gunm": c.Colors.GUNM, "vblk": c.Colors.VBLK, "cstl": c.Colors.CSTL,
	}
	roles := make([]string, 0, len(colors))
	for role := range colors {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		if v := colors[role]; v != "" && !hexColor.MatchString(v) {
			result = multierror.Append(result, fmt.Errorf("colors.%s %q is not #RRGGBB", role, v))
		}
	}

	return result.ErrorOrNil()
}
