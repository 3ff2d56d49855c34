// Package params holds the validated values gathered by a front-end before a run.
package params

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type stored in a Value
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindList
)

// Value is a single validated parameter value
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
	list []string
}

func StringValue(s string) Value { return Value{kind: KindString, s: s} }
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ListValue copies items so later changes by the caller are not observed
func ListValue(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind { return v.kind }

// String renders the value for display
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		if v.b {
			return "yes"
		}
		return "no"
	case KindList:
		return strings.Join(v.list, " ")
	default:
		return v.s
	}
}

// Set is an ordered mapping from parameter name to validated value.
// The zero value is ready to use.
type Set struct {
	keys   []string
	values map[string]Value
	frozen bool
}

// New creates an empty parameter set
func New() *Set {
	return &Set{values: make(map[string]Value)}
}

// Put stores v under name. Re-putting a name keeps its original position.
// Put panics on a frozen set.
func (s *Set) Put(name string, v Value) *Set {
	if s.frozen {
		panic(fmt.Sprintf("params: put %q on frozen set", name))
	}
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, ok := s.values[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.values[name] = v
	return s
}

func (s *Set) PutString(name, v string) *Set { return s.Put(name, StringValue(v)) }
func (s *Set) PutInt(name string, v int) *Set { return s.Put(name, IntValue(v)) }
func (s *Set) PutBool(name string, v bool) *Set { return s.Put(name, BoolValue(v)) }
func (s *Set) PutList(name string, v []string) *Set { return s.Put(name, ListValue(v)) }

// Get returns the value stored under name
func (s *Set) Get(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.values[name]
	return v, ok
}

// String returns the string value of name, or "" when absent
func (s *Set) String(name string) string {
	v, ok := s.Get(name)
	if !ok || v.kind != KindString {
		return ""
	}
	return v.s
}

// Int returns the int value of name, or 0 when absent
func (s *Set) Int(name string) int {
	v, ok := s.Get(name)
	if !ok || v.kind != KindInt {
		return 0
	}
	return v.i
}

// Bool returns the bool value of name, false when absent
func (s *Set) Bool(name string) bool {
	v, ok := s.Get(name)
	if !ok || v.kind != KindBool {
		return false
	}
	return v.b
}

// List returns a copy of the list value of name, nil when absent
func (s *Set) List(name string) []string {
	v, ok := s.Get(name)
	if !ok || v.kind != KindList {
		return nil
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// Keys returns parameter names in insertion order
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of parameters
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Freeze returns an immutable copy of the set
func (s *Set) Freeze() *Set {
	cp := New()
	if s != nil {
		for _, k := range s.keys {
			cp.Put(k, s.values[k])
		}
	}
	cp.frozen = true
	return cp
}

// Frozen reports whether the set rejects further writes
func (s *Set) Frozen() bool {
	return s != nil && s.frozen
}
