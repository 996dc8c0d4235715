// BYZRA ⸻ internal/propstore/memstore/memstore.go
// in-memory property service with failure injection

package memstore

import (
	"fmt"
	"os"
	"sync"

	"copydetails/internal/propkey"
	"copydetails/internal/propstore"
)

// in-memory files and their properties
type Service struct {
	mu    sync.Mutex
	files map[string]*file
	names map[propkey.Key]string

	// counters, read with Calls
	opens   int
	commits int

	// failure injection
	LockedForWrite map[string]bool
	FailKeyAt      map[int]bool
	FailGet        map[propkey.Key]bool
	FailSet        map[propkey.Key]bool
	FailCommit     map[propkey.Key]bool
	FailCount      bool

	// after this many successful read-write opens every further one fails; <0 disables
	WriteOpenBudget int
}

type file struct {
	order []propkey.Key
	props map[propkey.Key]propstore.Value
}

// names resolves keys for Name; may be nil
func New(names map[propkey.Key]string) *Service {
	return &Service{
		files:           make(map[string]*file),
		names:           names,
		LockedForWrite:  make(map[string]bool),
		FailKeyAt:       make(map[int]bool),
		FailGet:         make(map[propkey.Key]bool),
		FailSet:         make(map[propkey.Key]bool),
		FailCommit:      make(map[propkey.Key]bool),
		WriteOpenBudget: -1,
	}
}

// creates (or empties) a file
func (s *Service) AddFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = &file{props: make(map[propkey.Key]propstore.Value)}
}

// sets a property directly, bypassing stores
func (s *Service) Put(path string, key propkey.Key, v propstore.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[path]
	if !ok {
		f = &file{props: make(map[propkey.Key]propstore.Value)}
		s.files[path] = f
	}
	if _, ok := f.props[key]; !ok {
		f.order = append(f.order, key)
	}
	f.props[key] = v
}

// committed properties of path
func (s *Service) Props(path string) map[propkey.Key]propstore.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[propkey.Key]propstore.Value)
	if f, ok := s.files[path]; ok {
		for k, v := range f.props {
			out[k] = v
		}
	}
	return out
}

// number of Open and Commit calls so far
func (s *Service) Calls() (opens, commits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens, s.commits
}

func (s *Service) Open(path string, mode propstore.Mode) (propstore.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.opens++

	f, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	if mode == propstore.ReadWrite {
		if s.LockedForWrite[path] {
			return nil, fmt.Errorf("open %s: %w", path, os.ErrPermission)
		}
		if s.WriteOpenBudget == 0 {
			return nil, fmt.Errorf("open %s: %w", path, os.ErrPermission)
		}
		if s.WriteOpenBudget > 0 {
			s.WriteOpenBudget--
		}
	}

	return &store{svc: s, file: f, mode: mode, staged: make(map[propkey.Key]propstore.Value)}, nil
}

func (s *Service) Name(key propkey.Key) (string, error) {
	if name, ok := s.names[key]; ok {
		return name, nil
	}
	return "", fmt.Errorf("no name for %s", key)
}

type store struct {
	svc    *Service
	file   *file
	mode   propstore.Mode
	staged map[propkey.Key]propstore.Value
	order  []propkey.Key
	done   bool
	closed bool
}

func (st *store) usable() error {
	if st.closed {
		return propstore.ErrClosed
	}
	if st.done {
		return propstore.ErrCommitted
	}
	return nil
}

func (st *store) Count() (int, error) {
	if err := st.usable(); err != nil {
		return 0, err
	}
	if st.svc.FailCount {
		return 0, fmt.Errorf("count unavailable")
	}
	return len(st.file.order), nil
}

func (st *store) KeyAt(i int) (propkey.Key, error) {
	if err := st.usable(); err != nil {
		return propkey.Key{}, err
	}
	if st.svc.FailKeyAt[i] {
		return propkey.Key{}, fmt.Errorf("key %d unavailable", i)
	}
	if i < 0 || i >= len(st.file.order) {
		return propkey.Key{}, fmt.Errorf("index %d out of range", i)
	}
	return st.file.order[i], nil
}

func (st *store) Value(key propkey.Key) (propstore.Value, error) {
	if err := st.usable(); err != nil {
		return propstore.Value{}, err
	}
	if st.svc.FailGet[key] {
		return propstore.Value{}, fmt.Errorf("read %s failed", key)
	}
	v, ok := st.file.props[key]
	if !ok {
		return propstore.Value{}, propstore.ErrNotFound
	}
	return v, nil
}

func (st *store) SetValue(key propkey.Key, v propstore.Value) error {
	if err := st.usable(); err != nil {
		return err
	}
	if st.mode != propstore.ReadWrite {
		return propstore.ErrReadOnly
	}
	if st.svc.FailSet[key] {
		return fmt.Errorf("write %s failed", key)
	}
	if _, ok := st.staged[key]; !ok {
		st.order = append(st.order, key)
	}
	st.staged[key] = v
	return nil
}

func (st *store) Commit() error {
	if err := st.usable(); err != nil {
		return err
	}
	if st.mode != propstore.ReadWrite {
		return propstore.ErrReadOnly
	}
	st.done = true

	st.svc.mu.Lock()
	defer st.svc.mu.Unlock()
	st.svc.commits++

	for _, k := range st.order {
		if st.svc.FailCommit[k] {
			return fmt.Errorf("commit %s failed", k)
		}
	}
	for _, k := range st.order {
		if _, ok := st.file.props[k]; !ok {
			st.file.order = append(st.file.order, k)
		}
		st.file.props[k] = st.staged[k]
	}
	return nil
}

func (st *store) Close() error {
	st.closed = true
	return nil
}
