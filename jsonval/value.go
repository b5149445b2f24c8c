// Package jsonval defines a generic in-memory JSON tree: a closed set of
// value kinds (null, bool, number, string, array, object) that conversion
// code can switch over exhaustively. Objects remember key insertion order so
// that serialized output is deterministic and follows the order the producer
// assigned keys in, rather than lexicographic map order.
package jsonval

// Kind enumerates JSON value kinds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is the sum type over JSON nodes. Implementations are exactly the six
// types in this package.
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON true/false literal.
type Bool bool

// Number holds the lexical text of a JSON number. Keeping the source text
// avoids premature float64 conversion; callers convert with strconv using the
// bit size their target type requires.
type Number string

// String is a JSON string value.
type String string

// Array is an ordered sequence of JSON values.
type Array []Value

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }

// Object is a JSON object preserving key insertion order. Set on an existing
// key replaces the value in place; the key keeps its original position.
type Object struct {
	keys  []string
	index map[string]int
	vals  []Value
}

func (*Object) Kind() Kind { return KindObject }

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Set inserts or replaces the value stored under key.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

// At returns the i-th member in insertion order.
func (o *Object) At(i int) (string, Value) { return o.keys[i], o.vals[i] }

// Keys returns the member keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

// Equal reports deep equality of two JSON values. Objects compare by key set
// and per-key value, ignoring member order; numbers compare by lexical text.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			k, v := av.At(i)
			w, ok := bv.Get(k)
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	return false
}
