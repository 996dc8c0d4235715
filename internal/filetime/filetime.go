// BYZRA ⸻ internal/filetime/filetime.go
// creation and last-write timestamps of a file

package filetime

import (
	"fmt"
	"time"
)

// failing step of a timestamp transfer
type Op string

const (
	OpOpen Op = "open"
	OpGet  Op = "get"
	OpSet  Op = "set"
)

type Error struct {
	Op   Op
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("filetime %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// zero Created means the platform reported no birth time
type Times struct {
	Created  time.Time
	Modified time.Time
}

// outcome of Set
type Applied struct {
	Created  bool
	Modified bool
}

// reads the timestamps of path
func Get(path string) (Times, error) {
	return get(path)
}

// Set writes ts to path. A zero field is left alone. Platforms that cannot
// change a birth time report Created=false.
func Set(path string, ts Times) (Applied, error) {
	return set(path, ts)
}

// copies both timestamps from src to dst
func Copy(src, dst string) (Times, Applied, error) {
	ts, err := Get(src)
	if err != nil {
		return Times{}, Applied{}, err
	}
	applied, err := Set(dst, ts)
	return ts, applied, err
}
