package core

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-01-15", NewDate(2024, 1, 15), true},
		{"2024-02-29", NewDate(2024, 2, 29), true}, // leap year
		{"2023-02-29", Date{}, false},
		{"2024-13-01", Date{}, false},
		{"2024-00-01", Date{}, false},
		{"2024-01-32", Date{}, false},
		{"2024-1", Date{}, false},
		{"abcd-ef-gh", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q: got %v (err=%v), want %v", tc.in, got, err, tc.want)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestDateString(t *testing.T) {
	if got := NewDate(2025, 5, 5).String(); got != "2025-05-05" {
		t.Fatalf("got %q", got)
	}
}

func TestDateAddMonths(t *testing.T) {
	cases := []struct {
		name string
		d    Date
		n    int
		want Date
	}{
		{"same day", NewDate(2024, 1, 15), 1, NewDate(2024, 2, 15)},
		{"clamp to leap february", NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)},
		{"clamp to non-leap february", NewDate(2023, 1, 31), 1, NewDate(2023, 2, 28)},
		{"day restored after clamp month", NewDate(2024, 1, 31), 2, NewDate(2024, 3, 31)},
		{"year rollover", NewDate(2024, 11, 30), 3, NewDate(2025, 2, 28)},
		{"zero months", NewDate(2024, 6, 10), 0, NewDate(2024, 6, 10)},
		{"backwards", NewDate(2024, 1, 31), -1, NewDate(2023, 12, 31)},
		{"backwards across clamp", NewDate(2024, 3, 31), -1, NewDate(2024, 2, 29)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.AddMonths(tc.n); got != tc.want {
				t.Fatalf("%v + %d months = %v, want %v", tc.d, tc.n, got, tc.want)
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 29)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-02-29"` {
		t.Fatalf("got %s", data)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip: got %v, want %v", back, d)
	}
}

func TestDateBefore(t *testing.T) {
	cases := []struct {
		a, b Date
		want bool
	}{
		{NewDate(2024, 1, 1), NewDate(2024, 1, 2), true},
		{NewDate(2024, 1, 2), NewDate(2024, 1, 1), false},
		{NewDate(2024, 1, 31), NewDate(2024, 2, 1), true},
		{NewDate(2023, 12, 31), NewDate(2024, 1, 1), true},
		{NewDate(2024, 5, 5), NewDate(2024, 5, 5), false},
	}
	for i, tc := range cases {
		if got := tc.a.Before(tc.b); got != tc.want {
			t.Fatalf("case %d: %v.Before(%v) = %v", i, tc.a, tc.b, got)
		}
	}
}
