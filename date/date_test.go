package date

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "canonical", in: "2025-11-19", want: "2025-11-19"},
		{name: "single digit month and day", in: "2025-7-1", want: "2025-07-01"},
		{name: "garbage", in: "yesterday", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tc.in, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if got := d.String(); got != tc.want {
				t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	want := MustParse("2025-11-19")
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2025-11-19"` {
		t.Errorf("Marshal = %s, want %q", data, "2025-11-19")
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("round-trip = %v, want %v", got, want)
	}
}

func TestDate_Add(t *testing.T) {
	d := New(2025, 11, 30)
	if got, want := d.Add(1).String(), "2025-12-01"; got != want {
		t.Errorf("Add(1) = %s, want %s", got, want)
	}
	if got, want := d.Add(-30).String(), "2025-10-31"; got != want {
		t.Errorf("Add(-30) = %s, want %s", got, want)
	}
}
