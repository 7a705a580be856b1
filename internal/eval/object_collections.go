package eval

import (
	"sort"
	"strings"
)

type List struct {
	Elements []Value
}

func (l *List) Type() ValueType { return LIST_OBJ }
func (l *List) NixType() string { return NixTypeList }
func (l *List) Inspect() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for _, el := range l.Elements {
		sb.WriteString(el.Inspect())
		sb.WriteString(" ")
	}
	sb.WriteString("]")
	return sb.String()
}

// AttrSet is a finite string-keyed mapping. Keys are unordered internally;
// every enumeration goes through SortedKeys.
type AttrSet struct {
	Pairs map[string]Value
}

func NewAttrSet() *AttrSet {
	return &AttrSet{Pairs: make(map[string]Value)}
}

func (a *AttrSet) Type() ValueType { return ATTRSET_OBJ }
func (a *AttrSet) NixType() string { return NixTypeSet }
func (a *AttrSet) Inspect() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, k := range a.SortedKeys() {
		sb.WriteString(k)
		sb.WriteString(" = ")
		sb.WriteString(a.Pairs[k].Inspect())
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}

func (a *AttrSet) SortedKeys() []string {
	keys := make([]string, 0, len(a.Pairs))
	for k := range a.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a *AttrSet) Get(name string) (Value, bool) {
	v, ok := a.Pairs[name]
	return v, ok
}

func (a *AttrSet) Set(name string, v Value) {
	a.Pairs[name] = v
}

// Copy returns a shallow copy sharing the values.
func (a *AttrSet) Copy() *AttrSet {
	out := &AttrSet{Pairs: make(map[string]Value, len(a.Pairs))}
	for k, v := range a.Pairs {
		out.Pairs[k] = v
	}
	return out
}
