package tabular

import (
	"bytes"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Object is an insertion-ordered mapping from field name to [Value].
// A nil *Object reads as empty.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: map[string]Value{}}
}

// ObjectFromMap builds an object from a Go map. Keys are sorted.
func ObjectFromMap(m map[string]any) (*Object, error) {
	o := NewObject()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v, err := ValueOf(m[k])
		if err != nil {
			return nil, err
		}
		o.Set(k, v)
	}
	return o, nil
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Get returns the value stored under key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if o.fields == nil {
		o.fields = map[string]Value{}
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// All iterates fields in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.fields[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of o. Nested values are shared.
func (o *Object) Clone() *Object {
	c := NewObject()
	c.Merge(o)
	return c
}

// Merge copies every field of src into o. Fields of src win.
func (o *Object) Merge(src *Object) {
	for k, v := range src.All() {
		o.Set(k, v)
	}
}

// SetPath stores v at a dot-separated path, creating intermediate objects.
// Intermediate values that are not objects are replaced.
func (o *Object) SetPath(path string, v Value) {
	parts := strings.Split(path, ".")
	cur := o
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.Get(p)
		if !ok || next.Kind() != KindObject {
			next = ObjectOf(NewObject())
			cur.Set(p, next)
		}
		cur = next.Object()
	}
	cur.Set(parts[len(parts)-1], v)
}

// Map converts o into a plain Go map.
func (o *Object) Map() map[string]any {
	m := make(map[string]any, o.Len())
	for k, v := range o.All() {
		m[k] = v.Interface()
	}
	return m
}

// MarshalJSON implements json.Marshaler, keeping field order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	i := 0
	for k, v := range o.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		if err := encodeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := v.encode(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping field order.
func (o *Object) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if v.Kind() != KindObject {
		return errNotObject(v)
	}
	*o = *v.Object()
	return nil
}
