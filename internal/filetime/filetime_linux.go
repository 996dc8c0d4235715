// BYZRA ⸻ internal/filetime/filetime_linux.go
// statx for birth time, utimensat for last-write time

//go:build linux

package filetime

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func get(path string) (Times, error) {
	f, err := os.Open(path)
	if err != nil {
		return Times{}, &Error{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()

	var stx unix.Statx_t
	err = unix.Statx(int(f.Fd()), "", unix.AT_EMPTY_PATH, unix.STATX_BTIME|unix.STATX_MTIME, &stx)
	if err != nil {
		return Times{}, &Error{Op: OpGet, Path: path, Err: err}
	}

	var ts Times
	if stx.Mask&unix.STATX_MTIME != 0 {
		ts.Modified = time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec))
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		ts.Created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return ts, nil
}

// birth time is immutable on linux
func set(path string, ts Times) (Applied, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return Applied{}, &Error{Op: OpOpen, Path: path, Err: err}
	}
	defer f.Close()

	if ts.Modified.IsZero() {
		return Applied{}, nil
	}

	times := []unix.Timespec{
		{Sec: 0, Nsec: unix.UTIME_OMIT},
		unix.NsecToTimespec(ts.Modified.UnixNano()),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, path, times, 0); err != nil {
		return Applied{}, &Error{Op: OpSet, Path: path, Err: err}
	}
	return Applied{Modified: true}, nil
}
