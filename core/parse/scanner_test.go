package parse

import (
	"reflect"
	"testing"
)

func TestReadString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantLiteral string
		wantEnd     int
		wantOK      bool
	}{
		{
			name:        "simple",
			input:       `"abc", 1`,
			wantLiteral: `"abc"`,
			wantEnd:     5,
			wantOK:      true,
		},
		{
			name:        "escaped quote",
			input:       `"a\"b"`,
			wantLiteral: `"a\"b"`,
			wantEnd:     6,
			wantOK:      true,
		},
		{
			name:        "escaped backslash before closing quote",
			input:       `"a\\"`,
			wantLiteral: `"a\\"`,
			wantEnd:     5,
			wantOK:      true,
		},
		{
			name:    "unterminated",
			input:   `"abc`,
			wantEnd: 4,
			wantOK:  false,
		},
		{
			name:    "trailing backslash",
			input:   `"abc\`,
			wantEnd: 5,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			literal, end, ok := readString(tt.input, 0)
			if literal != tt.wantLiteral || end != tt.wantEnd || ok != tt.wantOK {
				t.Errorf("readString() = (%q, %d, %v), want (%q, %d, %v)",
					literal, end, ok, tt.wantLiteral, tt.wantEnd, tt.wantOK)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"plain"`, "plain"},
		{`"say \"hi\""`, `say "hi"`},
		{`"line\nbreak"`, "line\nbreak"},
		{`"café"`, "café"},
		{`"bad \x escape \"ok\""`, `bad \x escape "ok"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := unquote(tt.input); got != tt.want {
				t.Errorf("unquote(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchClose(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantEnd    int
		wantClosed bool
	}{
		{
			name:       "flat object",
			input:      `{"a":1} tail`,
			wantEnd:    6,
			wantClosed: true,
		},
		{
			name:       "brace inside string",
			input:      `{"a":"}"}`,
			wantEnd:    8,
			wantClosed: true,
		},
		{
			name:       "nested containers",
			input:      `[{"a":[1,2]},{}]`,
			wantEnd:    15,
			wantClosed: true,
		},
		{
			name:       "still open",
			input:      `{"a":[1,2`,
			wantEnd:    9,
			wantClosed: false,
		},
		{
			name:       "open string",
			input:      `{"a":"}`,
			wantEnd:    7,
			wantClosed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, closed := matchClose(tt.input, 0)
			if end != tt.wantEnd || closed != tt.wantClosed {
				t.Errorf("matchClose() = (%d, %v), want (%d, %v)", end, closed, tt.wantEnd, tt.wantClosed)
			}
		})
	}
}

func TestObjectKeys(t *testing.T) {
	input := `{"summary": "s", "events": [{"headline": "h"}], "nested": {"summary": "x"}, "summary": "dup"`

	keys := objectKeys(input)

	wantKeys := []string{"summary", "events", "nested"}
	if len(keys) != len(wantKeys) {
		t.Fatalf("objectKeys() returned %d keys (%v), want %d", len(keys), keys, len(wantKeys))
	}
	for _, key := range wantKeys {
		if _, ok := keys[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}

	if value, ok := stringValue(input, keys, "summary"); !ok || value != "s" {
		t.Errorf("stringValue(summary) = (%q, %v), want (\"s\", true)", value, ok)
	}
	if _, ok := stringValue(input, keys, "events"); ok {
		t.Error("events is not a string value")
	}
	if region, ok := arrayRegion(input, keys, "events"); !ok || region != `{"headline": "h"}` {
		t.Errorf("arrayRegion(events) = (%q, %v)", region, ok)
	}
	if _, ok := arrayRegion(input, keys, "nested"); ok {
		t.Error("nested is not an array")
	}
}

func TestArrayRegion_OpenArray(t *testing.T) {
	input := `{"barTalk": ["a", "b`
	keys := objectKeys(input)

	region, ok := arrayRegion(input, keys, "barTalk")
	if !ok {
		t.Fatal("expected an open array region")
	}
	if region != `"a", "b` {
		t.Errorf("region = %q", region)
	}
}

func TestCompleteObjects(t *testing.T) {
	tests := []struct {
		name   string
		region string
		want   []string
	}{
		{
			name:   "two closed objects",
			region: `{"a":1}, {"b":{"c":2}}`,
			want:   []string{`{"a":1}`, `{"b":{"c":2}}`},
		},
		{
			name:   "stops at open object",
			region: `{"a":1}, {"b":2`,
			want:   []string{`{"a":1}`},
		},
		{
			name:   "skips strings and arrays",
			region: `"x{", [{"n":1}], {"a":"}"}`,
			want:   []string{`{"a":"}"}`},
		},
		{
			name:   "empty",
			region: ``,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := completeObjects(tt.region)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("completeObjects() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestStringLiterals(t *testing.T) {
	got := stringLiterals(`"one", "t\"wo", "thr`)
	want := []string{"one", `t"wo`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stringLiterals() = %#v, want %#v", got, want)
	}

	if empty := stringLiterals(""); empty == nil || len(empty) != 0 {
		t.Errorf("stringLiterals(\"\") = %#v, want empty non-nil slice", empty)
	}
}

func TestJSONObjectCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  []string{`{"a":1}`},
		},
		{
			name:  "fenced object",
			input: "```json\n{\"a\":1}\n```",
			want:  []string{`{"a":1}`},
		},
		{
			name:  "prose before open object",
			input: "Sure! {\"a\":",
			want:  []string{`{"a":`},
		},
		{
			name:  "braces in prose come first",
			input: "Here is {the} data: {\"a\":{\"b\":1}",
			want:  []string{`{the}`, `{"a":{"b":1}`, `{"b":1}`},
		},
		{
			name:  "no object",
			input: "just text",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for candidate := range JSONObjectCandidates(tt.input) {
				got = append(got, candidate)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("JSONObjectCandidates() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJSONObjectCandidates_StopsEarly(t *testing.T) {
	count := 0
	for range JSONObjectCandidates("{}{}{}") {
		count++
		break
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
