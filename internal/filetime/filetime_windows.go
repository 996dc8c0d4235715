// BYZRA ⸻ internal/filetime/filetime_windows.go
// GetFileTime / SetFileTime on a handle

//go:build windows

package filetime

import (
	"time"

	"golang.org/x/sys/windows"
)

const shareAll = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE

func open(path string, access uint32) (windows.Handle, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return windows.InvalidHandle, err
	}
	return windows.CreateFile(name, access, shareAll, nil,
		windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_BACKUP_SEMANTICS, 0)
}

func get(path string) (Times, error) {
	h, err := open(path, windows.GENERIC_READ)
	if err != nil {
		return Times{}, &Error{Op: OpOpen, Path: path, Err: err}
	}
	defer windows.CloseHandle(h)

	var created, written windows.Filetime
	if err := windows.GetFileTime(h, &created, nil, &written); err != nil {
		return Times{}, &Error{Op: OpGet, Path: path, Err: err}
	}
	return Times{
		Created:  time.Unix(0, created.Nanoseconds()),
		Modified: time.Unix(0, written.Nanoseconds()),
	}, nil
}

func set(path string, ts Times) (Applied, error) {
	h, err := open(path, windows.FILE_WRITE_ATTRIBUTES)
	if err != nil {
		return Applied{}, &Error{Op: OpOpen, Path: path, Err: err}
	}
	defer windows.CloseHandle(h)

	var applied Applied
	var created, written *windows.Filetime
	if !ts.Created.IsZero() {
		ft := windows.NsecToFiletime(ts.Created.UnixNano())
		created = &ft
		applied.Created = true
	}
	if !ts.Modified.IsZero() {
		ft := windows.NsecToFiletime(ts.Modified.UnixNano())
		written = &ft
		applied.Modified = true
	}
	if created == nil && written == nil {
		return applied, nil
	}

	// nil leaves that time unchanged
	if err := windows.SetFileTime(h, created, nil, written); err != nil {
		return Applied{}, &Error{Op: OpSet, Path: path, Err: err}
	}
	return applied, nil
}
