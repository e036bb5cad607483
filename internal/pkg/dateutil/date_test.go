package dateutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Date
		ok    bool
	}{
		{"2025-06-15", Date{2025, time.June, 15}, true},
		{"2024-02-29", Date{2024, time.February, 29}, true},
		{"2025-02-29", Date{}, false},
		{"15-06-2025", Date{}, false},
		{"2025-6-5", Date{}, false},
		{"", Date{}, false},
	}
	for _, c := range cases {
		got, err := Parse(c.input)
		if c.ok != (err == nil) {
			t.Errorf("Parse(%q) error = %v, want ok=%v", c.input, err, c.ok)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	d := Date{2025, time.January, 9}
	if d.String() != "2025-01-09" {
		t.Errorf("String() = %q, want 2025-01-09", d.String())
	}
	parsed, err := Parse(d.String())
	if err != nil {
		t.Fatal(err)
	}
	if parsed != d {
		t.Errorf("round trip = %v, want %v", parsed, d)
	}
}

func TestAddDays(t *testing.T) {
	cases := []struct {
		start Date
		n     int
		want  Date
	}{
		{Date{2025, time.June, 15}, 1, Date{2025, time.June, 16}},
		{Date{2025, time.June, 30}, 1, Date{2025, time.July, 1}},
		{Date{2025, time.June, 1}, -1, Date{2025, time.May, 31}},
		{Date{2024, time.February, 28}, 1, Date{2024, time.February, 29}},
		{Date{2025, time.December, 31}, 1, Date{2026, time.January, 1}},
		{Date{2025, time.June, 15}, 0, Date{2025, time.June, 15}},
	}
	for _, c := range cases {
		if got := c.start.AddDays(c.n); got != c.want {
			t.Errorf("%v.AddDays(%d) = %v, want %v", c.start, c.n, got, c.want)
		}
	}
}

func TestDaysSince(t *testing.T) {
	cases := []struct {
		d, o Date
		want int
	}{
		{Date{2025, time.June, 15}, Date{2025, time.June, 8}, 7},
		{Date{2025, time.June, 15}, Date{2025, time.June, 15}, 0},
		{Date{2025, time.June, 15}, Date{2025, time.June, 16}, -1},
		{Date{2025, time.March, 1}, Date{2025, time.February, 28}, 1},
		{Date{2024, time.March, 1}, Date{2024, time.February, 28}, 2},
	}
	for _, c := range cases {
		if got := c.d.DaysSince(c.o); got != c.want {
			t.Errorf("%v.DaysSince(%v) = %d, want %d", c.d, c.o, got, c.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.June, 30},
		{2025, time.July, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	d := Date{2025, time.June, 15}
	got := d.At(9, 30, loc)
	want := time.Date(2025, time.June, 15, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("At(9,30) = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := Date{2025, time.June, 8}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-06-08"` {
		t.Errorf("Marshal = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("Unmarshal = %v, want %v", back, d)
	}
}
