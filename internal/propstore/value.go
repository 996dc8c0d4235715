// BYZRA ⸻ internal/propstore/value.go
// typed property values

package propstore

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// variant tag
type Kind int

const (
	KindEmpty Kind = iota
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindBool
	KindString
	KindStringList
	KindTime
	KindBinary
)

var kindNames = [...]string{
	KindEmpty:      "empty",
	KindInt32:      "int32",
	KindUint32:     "uint32",
	KindInt64:      "int64",
	KindUint64:     "uint64",
	KindBool:       "bool",
	KindString:     "string",
	KindStringList: "strings",
	KindTime:       "time",
	KindBinary:     "binary",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindEmpty, fmt.Errorf("unknown value kind %q", s)
}

// a property value; the zero Value is empty
type Value struct {
	kind Kind
	num  uint64 // integers and bool, two's complement for signed kinds
	str  string
	list []string
	at   time.Time
	bin  []byte
}

func Int32(v int32) Value { return Value{kind: KindInt32, num: uint64(int64(v))} }
func Uint32(v uint32) Value { return Value{kind: KindUint32, num: uint64(v)} }
func Int64(v int64) Value { return Value{kind: KindInt64, num: uint64(v)} }
func Uint64(v uint64) Value { return Value{kind: KindUint64, num: v} }
func String(v string) Value { return Value{kind: KindString, str: v} }
func Time(v time.Time) Value { return Value{kind: KindTime, at: v} }

func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

func StringList(v ...string) Value {
	return Value{kind: KindStringList, list: slices.Clone(v)}
}

func Binary(v []byte) Value {
	return Value{kind: KindBinary, bin: bytes.Clone(v)}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }
func (v Value) Int() int64 { return int64(v.num) }
func (v Value) Uint() uint64 { return v.num }
func (v Value) Bool() bool { return v.num != 0 }
func (v Value) Str() string { return v.str }
func (v Value) Time() time.Time { return v.at }

func (v Value) Strings() []string { return slices.Clone(v.list) }
func (v Value) Bytes() []byte { return bytes.Clone(v.bin) }

// same kind and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindInt32, KindUint32, KindInt64, KindUint64, KindBool:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindStringList:
		return slices.Equal(v.list, o.list)
	case KindTime:
		return v.at.Equal(o.at)
	case KindBinary:
		return bytes.Equal(v.bin, o.bin)
	}
	return false
}

// human-readable rendering for logs
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "<empty>"
	case KindInt32, KindInt64:
		return strconv.FormatInt(v.Int(), 10)
	case KindUint32, KindUint64:
		return strconv.FormatUint(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindString:
		return v.str
	case KindStringList:
		return strings.Join(v.list, "; ")
	case KindTime:
		return v.at.Format(time.RFC3339)
	case KindBinary:
		return fmt.Sprintf("%d bytes", len(v.bin))
	}
	return v.kind.String()
}
