package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.January, 31)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-31"` {
		t.Fatalf("unexpected encoding %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("expected %s, got %s", d, back)
	}
}

func TestDate_NullAndInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err != nil || !d.IsZero() {
		t.Fatalf("null should decode to zero date, got %v (%v)", d, err)
	}
	if err := json.Unmarshal([]byte(`"31/01/2024"`), &d); err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if err := json.Unmarshal([]byte(`20240131`), &d); err == nil {
		t.Fatal("expected error for non string date")
	}
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	if got := DateOf(ts).String(); got != "2024-03-05" {
		t.Fatalf("got %s", got)
	}
}
