// BYZRA ⸻ internal/filetime/filetime_other.go
// portable fallback: modification time only

//go:build !linux && !windows

package filetime

import (
	"os"
	"time"
)

func get(path string) (Times, error) {
	f, err := os.Open(path)
	if err != nil {
		return Times{}, &Error{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Times{}, &Error{Op: OpGet, Path: path, Err: err}
	}
	return Times{Modified: info.ModTime()}, nil
}

func set(path string, ts Times) (Applied, error) {
	if _, err := os.Stat(path); err != nil {
		return Applied{}, &Error{Op: OpOpen, Path: path, Err: err}
	}
	if ts.Modified.IsZero() {
		return Applied{}, nil
	}
	// zero atime is left unchanged
	if err := os.Chtimes(path, time.Time{}, ts.Modified); err != nil {
		return Applied{}, &Error{Op: OpSet, Path: path, Err: err}
	}
	return Applied{Modified: true}, nil
}
