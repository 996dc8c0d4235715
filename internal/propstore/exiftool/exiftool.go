// BYZRA ⸻ internal/propstore/exiftool/exiftool.go
// property store backed by the exiftool binary

package exiftool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"copydetails/internal/catalog"
	"copydetails/internal/propkey"
	"copydetails/internal/propstore"
	"copydetails/internal/util"
)

// exiftool date layout
const dateLayout = "2006:01:02 15:04:05-07:00"

// runs a command and returns its stdout
type Runner func(name string, args ...string) ([]byte, error)

// exiftool-backed property service
type Service struct {
	Binary  string
	Catalog *catalog.Catalog
	Run     Runner

	tags map[string]int // exiftool tag -> catalog index
}

// locates the binary; a missing binary means the service is unavailable
func New(binary string, cat *catalog.Catalog) (*Service, error) {
	if binary == "" {
		binary = "exiftool"
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("exiftool not available: %w", err)
	}
	return NewWithRunner(resolved, cat, ExecRunner), nil
}

// service using run instead of os/exec
func NewWithRunner(binary string, cat *catalog.Catalog, run Runner) *Service {
	if cat == nil {
		cat = catalog.Default
	}
	s := &Service{Binary: binary, Catalog: cat, Run: run, tags: make(map[string]int)}
	for i := 0; i < cat.Len(); i++ {
		if tag := cat.Entry(i).Tag; tag != "" {
			s.tags[strings.ToLower(tag)] = i
		}
	}
	return s
}

// runs the command under the spinner, stderr folded into the error
func ExecRunner(name string, args ...string) ([]byte, error) {
	out, err := util.SpinWhile("[~] Running exiftool", func() (string, error) {
		cmd := exec.Command(name, args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return stdout.String(), fmt.Errorf("%w: %s", err, msg)
			}
			return stdout.String(), err
		}
		return stdout.String(), nil
	})
	return []byte(out), err
}

func (s *Service) Name(key propkey.Key) (string, error) {
	if name, ok := s.Catalog.Name(key); ok {
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

	out, err := s.Run(s.Binary, "-json", "-n", "-q", path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract metadata: %w", err)
	}

	tags, err := ParseOutput(out)
	if err != nil {
		return nil, err
	}

	st := &store{
		svc:    s,
		path:   path,
		mode:   mode,
		values: make(map[propkey.Key]propstore.Value),
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		i, ok := s.tags[strings.ToLower(name)]
		if !ok {
			continue
		}
		v, ok := toValue(tags[name])
		if !ok {
			continue
		}
		key := s.Catalog.Entry(i).Key
		if _, dup := st.values[key]; dup {
			continue
		}
		st.order = append(st.order, key)
		st.values[key] = v
	}

	return st, nil
}

// parses exiftool -json output; only the first file matters
func ParseOutput(out []byte) (map[string]any, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return make(map[string]any), nil
	}

	var results []map[string]any
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to parse ExifTool JSON: %w", err)
	}

	if len(results) == 0 {
		return make(map[string]any), nil
	}

	return results[0], nil
}

// converts one decoded JSON value
func toValue(raw any) (propstore.Value, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return propstore.Int64(n), true
		}
		return propstore.String(v.String()), true
	case string:
		return propstore.String(v), true
	case bool:
		return propstore.Bool(v), true
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			list = append(list, fmt.Sprint(item))
		}
		return propstore.StringList(list...), true
	}
	return propstore.Value{}, false
}

// renders a value as exiftool assignment arguments
func assignArgs(tag string, v propstore.Value) ([]string, error) {
	switch v.Kind() {
	case propstore.KindInt32, propstore.KindInt64:
		return []string{"-" + tag + "=" + strconv.FormatInt(v.Int(), 10)}, nil
	case propstore.KindUint32, propstore.KindUint64:
		return []string{"-" + tag + "=" + strconv.FormatUint(v.Uint(), 10)}, nil
	case propstore.KindBool:
		return []string{"-" + tag + "=" + strconv.FormatBool(v.Bool())}, nil
	case propstore.KindString:
		return []string{"-" + tag + "=" + v.Str()}, nil
	case propstore.KindStringList:
		items := v.Strings()
		args := make([]string, 0, len(items))
		for _, item := range items {
			args = append(args, "-"+tag+"="+item)
		}
		return args, nil
	case propstore.KindTime:
		return []string{"-" + tag + "=" + v.Time().Format(dateLayout)}, nil
	}
	return nil, fmt.Errorf("%w: %s for tag %s", propstore.ErrUnsupported, v.Kind(), tag)
}

type store struct {
	svc    *Service
	path   string
	mode   propstore.Mode
	order  []propkey.Key
	values map[propkey.Key]propstore.Value
	staged []string
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

	i, ok := st.svc.Catalog.Index(key)
	if !ok || st.svc.Catalog.Entry(i).Tag == "" {
		return fmt.Errorf("%w: no exiftool tag for %s", propstore.ErrUnsupported, key)
	}

	args, err := assignArgs(st.svc.Catalog.Entry(i).Tag, v)
	if err != nil {
		return err
	}
	st.staged = append(st.staged, args...)
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

	if len(st.staged) == 0 {
		return nil
	}

	args := append([]string{"-overwrite_original", "-m", "-q"}, st.staged...)
	args = append(args, st.path)
	if _, err := st.svc.Run(st.svc.Binary, args...); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

func (st *store) Close() error {
	st.closed = true
	return nil
}
