package dialog

import (
	"encoding/json"
	"testing"
)

type sample struct {
	Adults int      `json:"adults"`
	Addons []string `json:"addons"`
}

func TestDecodeAfterJSONRoundTrip(t *testing.T) {
	p := Payload{"session": sample{Adults: 2, Addons: []string{"bike"}}}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var stored Payload
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}

	var got sample
	if err := Decode(stored, "session", &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Adults != 2 || len(got.Addons) != 1 || got.Addons[0] != "bike" {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestDecodeMissingKey(t *testing.T) {
	got := sample{Adults: 5}
	if err := Decode(Payload{}, "session", &got); err != nil || got.Adults != 5 {
		t.Fatalf("missing key must leave value untouched, got %+v %v", got, err)
	}
}

func TestGetString(t *testing.T) {
	p := Payload{"ref": "abc", "n": 1.0}
	if s, ok := GetString(p, "ref"); !ok || s != "abc" {
		t.Fatalf("unexpected %q %v", s, ok)
	}
	if _, ok := GetString(p, "n"); ok {
		t.Fatal("non-string must not be returned")
	}
}
