package document_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stevemurr/jsonrecords/document"
)

func mustParseObject(t *testing.T, src string) *document.Object {
	t.Helper()
	obj, err := document.ParseObject([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return obj
}

func TestParseKeepsKeyOrder(t *testing.T) {
	obj := mustParseObject(t, `{"zeta": 1, "alpha": 2, "mid": {"b": 1, "a": 2}}`)

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, obj.Keys()); diff != "" {
		t.Fatalf("top-level keys (-want +got):\n%s", diff)
	}
	mid, _ := obj.Get("mid")
	if diff := cmp.Diff([]string{"b", "a"}, mid.Object().Keys()); diff != "" {
		t.Fatalf("nested keys (-want +got):\n%s", diff)
	}
}

func TestParseKinds(t *testing.T) {
	obj := mustParseObject(t, `{"n": null, "t": true, "f": false, "i": 42, "x": 1.50, "s": "Gacrux", "a": [1, "two"], "o": {}}`)

	want := map[string]document.Kind{
		"n": document.KindNull,
		"t": document.KindBool,
		"f": document.KindBool,
		"i": document.KindNumber,
		"x": document.KindNumber,
		"s": document.KindString,
		"a": document.KindArray,
		"o": document.KindObject,
	}
	for k, kind := range want {
		v, ok := obj.Get(k)
		if !ok {
			t.Fatalf("missing key %q", k)
		}
		if v.Kind() != kind {
			t.Errorf("%s: expected %s, got %s", k, kind, v.Kind())
		}
	}

	x, _ := obj.Get("x")
	if x.String() != "1.50" {
		t.Errorf("number literal not preserved: %q", x.String())
	}
	a, _ := obj.Get("a")
	if len(a.Items()) != 2 || a.Items()[1].Str() != "two" {
		t.Errorf("unexpected array items: %v", a.Items())
	}
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	obj := mustParseObject(t, `{"a": 1, "b": 2, "a": 3}`)
	if diff := cmp.Diff([]string{"a", "b"}, obj.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	a, _ := obj.Get("a")
	if a.String() != "3" {
		t.Fatalf("expected last value 3, got %s", a)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", ``, document.ErrSyntax},
		{"truncated", `{"a": `, document.ErrSyntax},
		{"trailing garbage", `{"a": 1} x`, document.ErrSyntax},
		{"invalid utf-8", "{\"a\": \"caf\xe9\"}", document.ErrSyntax},
		{"lone high surrogate", `{"a": "\ud800"}`, document.ErrSyntax},
		{"lone low surrogate", `{"a": "x\udc00"}`, document.ErrSyntax},
		{"high surrogate then text", `{"a": "\ud83dx"}`, document.ErrSyntax},
		{"array", `[1, 2]`, document.ErrNotObject},
		{"string", `"planets"`, document.ErrNotObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.ParseObject([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEncodeIndented(t *testing.T) {
	obj := mustParseObject(t, `{"k1":{"name":"Gacrux","tags":["a",1],"empty":{},"none":[]},"k2":{}}`)

	got, err := document.Encode(document.ObjectValue(obj), "    ")
	if err != nil {
		t.Fatal(err)
	}
	want := `{
    "k1": {
        "name": "Gacrux",
        "tags": [
            "a",
            1
        ],
        "empty": {},
        "none": []
    },
    "k2": {}
}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("encoded output (-want +got):\n%s", diff)
	}
}

func TestParseSurrogatePairs(t *testing.T) {
	obj := mustParseObject(t, `{"emoji": "\ud83d\ude00", "path": "C:\\u0041"}`)
	emoji, _ := obj.Get("emoji")
	if emoji.Str() != "\U0001F600" {
		t.Fatalf("expected decoded pair, got %q", emoji.Str())
	}
	path, _ := obj.Get("path")
	if path.Str() != `C:\u0041` {
		t.Fatalf("escaped backslash misread as escape: %q", path.Str())
	}
}

func TestEncodeCompactAndEscaping(t *testing.T) {
	obj := document.NewObject()
	obj.Set("quote", document.StringValue(`say "hi"`))
	obj.Set("html", document.StringValue("<b>&</b>"))
	obj.Set("unicode", document.StringValue("Fornskógur"))

	got, err := document.Encode(document.ObjectValue(obj), "")
	if err != nil {
		t.Fatal(err)
	}
	want := `{"quote":"say \"hi\"","html":"<b>&</b>","unicode":"Fornskógur"}`
	if string(got) != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRoundTrip(t *testing.T) {
	src := `{"k1": {"name": "X-45", "size": 1e3, "moons": [{"id": 7}], "flag": null}}`
	obj := mustParseObject(t, src)

	out, err := document.Encode(document.ObjectValue(obj), "    ")
	if err != nil {
		t.Fatal(err)
	}
	again := mustParseObject(t, string(out))
	if !obj.Equal(again) {
		t.Fatalf("round trip changed content:\n%s", out)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    document.Value
		want string
	}{
		{document.StringValue("Sandy"), "Sandy"},
		{document.NumberLiteral("12"), "12"},
		{document.NumberValue(3), "3"},
		{document.NumberValue(0.25), "0.25"},
		{document.BoolValue(true), "true"},
		{document.NullValue(), "null"},
		{document.ArrayValue(document.StringValue("rainstorms")), `["rainstorms"]`},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestEqualIgnoresKeyOrder(t *testing.T) {
	a := mustParseObject(t, `{"x": 1, "y": [1, 2]}`)
	b := mustParseObject(t, `{"y": [1, 2], "x": 1.0}`)
	if !a.Equal(b) {
		t.Fatal("expected objects to be equal")
	}
	c := mustParseObject(t, `{"y": [2, 1], "x": 1}`)
	if a.Equal(c) {
		t.Fatal("array order must matter")
	}
}

func TestMergePreservesUntouchedFields(t *testing.T) {
	rec := mustParseObject(t, `{"name": "Gacrux", "biome": "toxic", "sector": "Ursa"}`)
	upd := mustParseObject(t, `{"biome": "sandy_acid", "environmentals": ["rainstorms"]}`)

	rec.Merge(upd)

	want := mustParseObject(t, `{"name": "Gacrux", "biome": "sandy_acid", "sector": "Ursa", "environmentals": ["rainstorms"]}`)
	if !rec.Equal(want) {
		t.Fatalf("unexpected merge result")
	}
	if diff := cmp.Diff([]string{"name", "biome", "sector", "environmentals"}, rec.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}

	// The update set must not be aliased into the record.
	envs, _ := upd.Get("environmentals")
	envs.Items()[0] = document.StringValue("changed")
	got, _ := rec.Get("environmentals")
	if got.Items()[0].Str() != "rainstorms" {
		t.Fatal("merge aliased the update values")
	}
}

func TestObjectDelete(t *testing.T) {
	obj := mustParseObject(t, `{"a": 1, "b": 2, "c": 3}`)
	if !obj.Delete("b") {
		t.Fatal("expected delete to report true")
	}
	if obj.Delete("b") {
		t.Fatal("second delete should report false")
	}
	if diff := cmp.Diff([]string{"a", "c"}, obj.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
}

func TestFold(t *testing.T) {
	tests := []struct{ a, b string }{
		{"Gacrux", "GACRUX"},
		{"pherkad secundus", "PHERKAD SECUNDUS"},
		{"FORNSKÓGUR II", "fornskógur ii"},
	}
	for _, tt := range tests {
		if !document.EqualFold(tt.a, tt.b) {
			t.Errorf("expected %q and %q to fold equal", tt.a, tt.b)
		}
	}
	if document.EqualFold("Caph", "Caph Prime") {
		t.Error("folding must not do prefix matching")
	}
}
