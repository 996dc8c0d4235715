// BYZRA ⸻ internal/propstore/sidecar/sidecar.go
// property store persisted as a TOML file next to the media file

package sidecar

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"copydetails/internal/catalog"
	"copydetails/internal/propkey"
	"copydetails/internal/propstore"
	"copydetails/internal/util"

	"github.com/BurntSushi/toml"
)

const DefaultSuffix = ".props.toml"

// sidecar-backed property service
type Service struct {
	// appended to the media path to name the sidecar
	Suffix string

	// resolves names; catalog.Default when nil
	Catalog *catalog.Catalog
}

func New(suffix string) *Service {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Service{Suffix: suffix}
}

// sidecar path for a media file
func (s *Service) PathFor(path string) string {
	return path + s.Suffix
}

func (s *Service) catalog() *catalog.Catalog {
	if s.Catalog != nil {
		return s.Catalog
	}
	return catalog.Default
}

func (s *Service) Name(key propkey.Key) (string, error) {
	if name, ok := s.catalog().Name(key); ok {
		return name, nil
	}
	return "", fmt.Errorf("no name for %s", key)
}

func (s *Service) Open(path string, mode propstore.Mode) (propstore.Store, error) {
	check := util.ValidateReadable
	if mode == propstore.ReadWrite {
		check = util.ValidateWritable
	}
	if err := check(path); err != nil {
		return nil, fmt.Errorf("cannot open property store (%s): %w", mode, err)
	}

	st := &store{svc: s, path: s.PathFor(path), mode: mode, values: make(map[propkey.Key]propstore.Value)}
	if err := st.load(); err != nil {
		return nil, err
	}
	return st, nil
}

// on-disk layout
type document struct {
	Property []record `toml:"property"`
}

type record struct {
	Format string `toml:"format"`
	ID     uint32 `toml:"id"`
	Name   string `toml:"name,omitempty"`
	Kind   string `toml:"kind"`
	Value  any    `toml:"value"`
}

type store struct {
	svc    *Service
	path   string
	mode   propstore.Mode
	order  []propkey.Key
	values map[propkey.Key]propstore.Value
	dirty  bool
	done   bool
	closed bool
}

func (st *store) load() error {
	var doc document
	if _, err := toml.DecodeFile(st.path, &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to parse sidecar %s: %w", st.path, err)
	}

	for i, r := range doc.Property {
		key, v, err := decodeRecord(r)
		if err != nil {
			return fmt.Errorf("sidecar %s, property %d: %w", st.path, i, err)
		}
		st.put(key, v)
	}
	return nil
}

func (st *store) put(key propkey.Key, v propstore.Value) {
	if _, ok := st.values[key]; !ok {
		st.order = append(st.order, key)
	}
	st.values[key] = v
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
	return len(st.order), nil
}

func (st *store) KeyAt(i int) (propkey.Key, error) {
	if err := st.usable(); err != nil {
		return propkey.Key{}, err
	}
	if i < 0 || i >= len(st.order) {
		return propkey.Key{}, fmt.Errorf("index %d out of range [0,%d)", i, len(st.order))
	}
	return st.order[i], nil
}

func (st *store) Value(key propkey.Key) (propstore.Value, error) {
	if err := st.usable(); err != nil {
		return propstore.Value{}, err
	}
	v, ok := st.values[key]
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
	if v.IsEmpty() {
		return fmt.Errorf("%w: empty value", propstore.ErrUnsupported)
	}
	st.put(key, v)
	st.dirty = true
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

	if !st.dirty {
		return nil
	}

	doc := document{Property: make([]record, 0, len(st.order))}
	for _, key := range st.order {
		r, err := encodeRecord(key, st.values[key])
		if err != nil {
			return err
		}
		r.Name, _ = st.svc.catalog().Name(key)
		doc.Property = append(doc.Property, r)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode sidecar: %w", err)
	}

	if err := util.WriteFileAtomic(st.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write sidecar: %w", err)
	}
	return nil
}

func (st *store) Close() error {
	st.closed = true
	return nil
}

func encodeRecord(key propkey.Key, v propstore.Value) (record, error) {
	r := record{
		Format: key.Format.String(),
		ID:     key.ID,
		Kind:   v.Kind().String(),
	}

	switch v.Kind() {
	case propstore.KindInt32, propstore.KindInt64:
		r.Value = v.Int()
	case propstore.KindUint32:
		r.Value = int64(v.Uint())
	case propstore.KindUint64:
		// TOML integers are signed 64-bit
		r.Value = strconv.FormatUint(v.Uint(), 10)
	case propstore.KindBool:
		r.Value = v.Bool()
	case propstore.KindString:
		r.Value = v.Str()
	case propstore.KindStringList:
		r.Value = v.Strings()
	case propstore.KindTime:
		r.Value = v.Time().UTC()
	case propstore.KindBinary:
		r.Value = base64.StdEncoding.EncodeToString(v.Bytes())
	default:
		return record{}, fmt.Errorf("%w: kind %s", propstore.ErrUnsupported, v.Kind())
	}
	return r, nil
}

func decodeRecord(r record) (propkey.Key, propstore.Value, error) {
	format, err := propkey.ParseGUID(r.Format)
	if err != nil {
		return propkey.Key{}, propstore.Value{}, err
	}
	key := propkey.Key{Format: format, ID: r.ID}

	kind, err := propstore.ParseKind(r.Kind)
	if err != nil {
		return key, propstore.Value{}, err
	}

	bad := func() (propkey.Key, propstore.Value, error) {
		return key, propstore.Value{}, fmt.Errorf("value %v (%T) does not fit kind %s", r.Value, r.Value, kind)
	}

	switch kind {
	case propstore.KindInt32:
		n, ok := r.Value.(int64)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return bad()
		}
		return key, propstore.Int32(int32(n)), nil
	case propstore.KindUint32:
		n, ok := r.Value.(int64)
		if !ok || n < 0 || n > math.MaxUint32 {
			return bad()
		}
		return key, propstore.Uint32(uint32(n)), nil
	case propstore.KindInt64:
		n, ok := r.Value.(int64)
		if !ok {
			return bad()
		}
		return key, propstore.Int64(n), nil
	case propstore.KindUint64:
		s, ok := r.Value.(string)
		if !ok {
			return bad()
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return bad()
		}
		return key, propstore.Uint64(n), nil
	case propstore.KindBool:
		b, ok := r.Value.(bool)
		if !ok {
			return bad()
		}
		return key, propstore.Bool(b), nil
	case propstore.KindString:
		s, ok := r.Value.(string)
		if !ok {
			return bad()
		}
		return key, propstore.String(s), nil
	case propstore.KindStringList:
		raw, ok := r.Value.([]any)
		if !ok {
			return bad()
		}
		list := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return bad()
			}
			list = append(list, s)
		}
		return key, propstore.StringList(list...), nil
	case propstore.KindTime:
		at, ok := r.Value.(time.Time)
		if !ok {
			return bad()
		}
		return key, propstore.Time(at), nil
	case propstore.KindBinary:
		s, ok := r.Value.(string)
		if !ok {
			return bad()
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return bad()
		}
		return key, propstore.Binary(raw), nil
	}
	return bad()
}
