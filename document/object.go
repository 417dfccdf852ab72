package document

import "iter"

// Object is a JSON object that remembers key insertion order. Setting an
// existing key replaces its value in place.
//
// Read methods are safe on a nil *Object, which behaves as empty.
type Object struct {
	keys []string
	vals map[string]Value
}

func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.vals[key]
	return ok
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.vals[key]
	return v, ok
}

func (o *Object) Set(key string, v Value) {
	if o.vals == nil {
		o.vals = make(map[string]Value)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.vals[key]; !ok {
		return false
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns a copy of the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// All iterates over the entries in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// Merge copies every entry of src into o, overwriting fields that already
// exist and appending new ones in src's order. Fields of o not named in src
// are left untouched.
func (o *Object) Merge(src *Object) {
	for k, v := range src.All() {
		o.Set(k, v.Clone())
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	c := NewObject()
	for k, v := range o.All() {
		c.Set(k, v.Clone())
	}
	return c
}

// Equal compares entries irrespective of key order.
func (o *Object) Equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	}
	for k, v := range o.All() {
		w, ok := p.Get(k)
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler with compact output.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Encode(ObjectValue(o), "")
}
