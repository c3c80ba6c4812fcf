package core

import (
	"encoding/json"
	"testing"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		raw  string
		want ID
		ok   bool
	}{
		{`42`, "42", true},
		{`42.0`, "42", true},
		{`"42"`, "42", true},
		{` 204554 `, "204554", true},
		{`1.5`, "1.5", true},
		{`"abc"`, "abc", true},
		{`null`, "", false},
		{``, "", false},
		{`true`, "", false},
	}
	for _, tc := range cases {
		got, err := ParseID(json.RawMessage(tc.raw))
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.raw, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %q", tc.raw, got)
		}
	}
}

func TestIDMatchesNumericAndString(t *testing.T) {
	numeric, err := ParseID(json.RawMessage(`42`))
	if err != nil {
		t.Fatal(err)
	}
	if !numeric.Matches("42") {
		t.Fatalf("numeric id 42 should match \"42\"")
	}
	if numeric.Matches("042") || numeric.Matches(" 42") {
		t.Fatalf("textual comparison must be exact")
	}
}

func TestIDPathSafe(t *testing.T) {
	for id, want := range map[ID]bool{
		"42":     true,
		"abc-1":  true,
		"":       false,
		"..":     false,
		"../x":   false,
		`a\b`:    false,
		"a/b":    false,
	} {
		if got := id.PathSafe(); got != want {
			t.Fatalf("PathSafe(%q) = %v", id, got)
		}
	}
}

func TestAmountsPreserveOrder(t *testing.T) {
	var a Amounts
	raw := `{"z":1,"a":2.5,"m":null,"z":3}`
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatal(err)
	}
	want := Amounts{{Key: "z", Amount: 3}, {Key: "a", Amount: 2.5}, {Key: "m", Amount: 0}}
	if len(a) != len(want) {
		t.Fatalf("got %+v", a)
	}
	for i := range want {
		if a[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, a[i], want[i])
		}
	}
	if a.Get("a") != 2.5 || a.Get("missing") != 0 {
		t.Fatalf("Get mismatch")
	}

	out, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"z":3,"a":2.5,"m":0}` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestAmountsNullAndInvalid(t *testing.T) {
	var a Amounts
	if err := json.Unmarshal([]byte(`null`), &a); err != nil || len(a) != 0 {
		t.Fatalf("null: %+v %v", a, err)
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &a); err == nil {
		t.Fatalf("array should fail")
	}
	if err := json.Unmarshal([]byte(`{"a":"x"}`), &a); err == nil {
		t.Fatalf("non-numeric value should fail")
	}
}
