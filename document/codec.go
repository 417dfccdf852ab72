package document

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrSyntax is returned for input that is not well-formed JSON.
	ErrSyntax = errors.New("invalid JSON")
	// ErrNotObject is returned when a document's top level is not an object.
	ErrNotObject = errors.New("top-level value is not a JSON object")
)

// Parse decodes a single JSON value, keeping object key order and number
// literals as they appear in data. Input that is not valid UTF-8, or that
// escapes an unpaired surrogate, is rejected: such text cannot be written
// back unchanged.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, errors.WithStack(ErrSyntax)
	}
	if !utf8.Valid(data) {
		return Value{}, errors.Wrap(ErrSyntax, "not valid UTF-8")
	}
	if !pairedSurrogates(data) {
		return Value{}, errors.Wrap(ErrSyntax, "unpaired surrogate escape")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseObject decodes data and requires the top level to be an object.
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if v.kind != KindObject {
		return nil, errors.Wrapf(ErrNotObject, "found %s", v.kind)
	}
	return v.obj, nil
}

// pairedSurrogates reports whether every \uD800-\uDFFF escape in data is
// part of a high/low pair. data must already be valid JSON, so a backslash
// only ever starts an escape inside a string.
func pairedSurrogates(data []byte) bool {
	pendingHigh := false
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			if pendingHigh {
				return false
			}
			continue
		}
		i++
		if data[i] != 'u' {
			if pendingHigh {
				return false
			}
			continue
		}
		n, err := strconv.ParseUint(string(data[i+1:i+5]), 16, 16)
		if err != nil {
			return false
		}
		i += 4
		r := rune(n)
		switch {
		case pendingHigh:
			if r < 0xDC00 || r >= 0xE000 {
				return false
			}
			pendingHigh = false
		case r >= 0xD800 && r < 0xDC00:
			pendingHigh = true
		case r >= 0xDC00 && r < 0xE000:
			return false
		}
	}
	return !pendingHigh
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return NullValue()
	case gjson.False:
		return BoolValue(false)
	case gjson.True:
		return BoolValue(true)
	case gjson.Number:
		return NumberLiteral(strings.TrimSpace(r.Raw))
	case gjson.String:
		return StringValue(r.Str)
	}
	if r.IsArray() {
		items := []Value{}
		r.ForEach(func(_, item gjson.Result) bool {
			items = append(items, fromResult(item))
			return true
		})
		return ArrayValue(items...)
	}
	obj := NewObject()
	r.ForEach(func(key, val gjson.Result) bool {
		obj.Set(key.Str, fromResult(val))
		return true
	})
	return ObjectValue(obj)
}

// Encode renders v as JSON. With a non-empty indent each array element and
// object member goes on its own line, prefixed by indent once per nesting
// level, and members are written as `"key": value`. An empty indent yields
// compact output. Non-ASCII text is written as UTF-8.
func Encode(v Value, indent string) ([]byte, error) {
	e := &encoder{indent: indent}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	indent string
	tmp    bytes.Buffer
	enc    *json.Encoder
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for range depth {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) str(s string) error {
	if e.enc == nil {
		e.enc = json.NewEncoder(&e.tmp)
		e.enc.SetEscapeHTML(false)
	}
	e.tmp.Reset()
	if err := e.enc.Encode(s); err != nil {
		return errors.Wrap(err, "encode string")
	}
	e.buf.Write(bytes.TrimSuffix(e.tmp.Bytes(), []byte("\n")))
	return nil
}

func (e *encoder) value(v Value, depth int) error {
	switch v.kind {
	case KindNull:
		e.buf.WriteString("null")
	case KindBool:
		if v.b {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case KindNumber:
		e.buf.WriteString(v.s)
	case KindString:
		return e.str(v.s)
	case KindArray:
		if len(v.items) == 0 {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.value(item, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	case KindObject:
		if v.obj.Len() == 0 {
			e.buf.WriteString("{}")
			return nil
		}
		e.buf.WriteByte('{')
		i := 0
		for k, member := range v.obj.All() {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			i++
			e.newline(depth + 1)
			if err := e.str(k); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if e.indent != "" {
				e.buf.WriteByte(' ')
			}
			if err := e.value(member, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte('}')
	default:
		return errors.Errorf("encode: unknown kind %d", v.kind)
	}
	return nil
}

// Fold returns the locale-independent lowercase form of s.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// EqualFold reports whether a and b are equal after Fold.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
