// BYZRA ⸻ cmd/copydetails/run.go
// property transfer followed by timestamp transfer

package main

import (
	"errors"

	"copydetails/internal/catalog"
	"copydetails/internal/config"
	"copydetails/internal/filetime"
	"copydetails/internal/formats"
	"copydetails/internal/propstore"
	"copydetails/internal/propstore/exiftool"
	"copydetails/internal/propstore/sidecar"
	"copydetails/internal/transfer"
	"copydetails/internal/util"
)

// builds the metadata service for a run
type serviceFactory func(cfg *config.Config, cat *catalog.Catalog, log *util.Logger) (propstore.Service, error)

func newService(cfg *config.Config, cat *catalog.Catalog, log *util.Logger) (propstore.Service, error) {
	switch cfg.Backend {
	case config.BackendExiftool:
		svc, err := exiftool.New(cfg.Exiftool.Path, cat)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.BackendSidecar:
		return newSidecar(cfg, cat), nil
	}

	svc, err := exiftool.New(cfg.Exiftool.Path, cat)
	if err == nil {
		log.Debugf("metadata backend: exiftool (%s)", svc.Binary)
		return svc, nil
	}
	log.Debugf("metadata backend: sidecar (%v)", err)
	return newSidecar(cfg, cat), nil
}

func newSidecar(cfg *config.Config, cat *catalog.Catalog) *sidecar.Service {
	svc := sidecar.New(cfg.Sidecar.Suffix)
	svc.Catalog = cat
	return svc
}

func (a *app) copyDetails(opts *options, args []string) int {
	if len(args) < 2 {
		a.printUsage()
		return 0
	}

	// destination first, as given on the command line
	paths := make([]string, 2)
	for i, arg := range args[:2] {
		abs, err := util.ResolvePath(arg)
		if err != nil {
			a.log.Errorf("Cannot get full path for file: %s", arg)
			a.log.Debugf("  %v", err)
			return 1
		}
		paths[i] = abs
	}
	dst, src := paths[0], paths[1]

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		a.log.Errorf("Cannot load configuration: %v", err)
		return 1
	}
	if opts.backend != "" {
		cfg.Backend = opts.backend
		if err := cfg.Validate(); err != nil {
			a.log.Errorf("Cannot load configuration: %v", err)
			return 1
		}
	}
	util.ApplyPalette(cfg.Colors)
	if cfg.Source != "" {
		a.log.Debugf("configuration: %s", cfg.Source)
	}

	if !opts.copyOnlyDates {
		if code := a.copyProperties(opts, cfg, src, dst); code != 0 {
			return code
		}
	}

	return a.copyTimes(src, dst)
}

func (a *app) copyProperties(opts *options, cfg *config.Config, src, dst string) int {
	profile, path, err := config.LoadProfile(opts.profilePath)
	if err != nil {
		a.log.Errorf("Cannot load profile: %v", err)
		return 1
	}
	cat, err := profile.Apply(catalog.Default)
	if err != nil {
		a.log.Errorf("Cannot load profile %s: %v", path, err)
		return 1
	}
	if path != "" {
		a.log.Debugf("profile: %s (%d excluded)", path, len(profile.Excluded()))
	}

	a.checkContainers(src, dst)

	svc, err := a.newService(cfg, cat, a.log)
	if err != nil {
		a.log.Error("Cannot initialize metadata service")
		a.log.Debugf("  %v", err)
		return 0
	}

	slots, ok := transfer.NewReader(svc, cat, a.log).Read(src)
	if !ok {
		return 0
	}
	if err := transfer.NewWriter(svc, cat, a.log).Write(dst, slots); err != nil {
		if !errors.Is(err, transfer.ErrStoreUnavailable) {
			a.log.Error(err.Error())
		}
		a.log.Debugf("  remaining properties skipped: %v", err)
		return 0
	}

	if opts.verify {
		a.verify(svc, cat, dst, slots)
	}
	return 0
}

func (a *app) verify(svc propstore.Service, cat *catalog.Catalog, dst string, slots transfer.Slots) {
	result, err := transfer.NewReader(svc, cat, a.log).Verify(dst, slots)
	if err != nil {
		a.log.Errorf("Cannot verify file: %s", dst)
		a.log.Debugf("  %v", err)
		return
	}
	for _, name := range result.Missing {
		a.log.Warningf("Property missing after copy: %s", name)
	}
	for _, name := range result.Mismatched {
		a.log.Warningf("Property changed during copy: %s", name)
	}
	if result.Success() {
		a.log.Debugf("verified %d properties", result.Checked)
	}
}

// warns when the files hold different container formats
func (a *app) checkContainers(src, dst string) {
	s, err := formats.Detect(src)
	if err != nil {
		a.log.Debugf("container of %s: %v", src, err)
		return
	}
	d, err := formats.Detect(dst)
	if err != nil {
		a.log.Debugf("container of %s: %v", dst, err)
		return
	}
	if !s.Matches(d) {
		a.log.Warningf("Source and destination containers differ: %s vs %s", s, d)
	}
}

func (a *app) copyTimes(src, dst string) int {
	ts, applied, err := filetime.Copy(src, dst)
	if err != nil {
		var ferr *filetime.Error
		if !errors.As(err, &ferr) {
			a.log.Error(err.Error())
			return 1
		}
		switch ferr.Op {
		case filetime.OpOpen:
			a.log.Errorf("Cannot open file: %s", ferr.Path)
		case filetime.OpGet:
			a.log.Error("Cannot get filetime")
		default:
			a.log.Error("Cannot set filetime")
		}
		a.log.Debugf("  %v", ferr.Err)
		return 1
	}

	if !ts.Created.IsZero() && !applied.Created {
		a.log.Debug("creation time cannot be set on this platform, kept last-write time only")
	}
	a.log.Debugf("timestamps: created %s, modified %s", ts.Created, ts.Modified)
	return 0
}
