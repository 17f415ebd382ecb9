package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestNextDay(t *testing.T) {
	tests := []struct {
		day  Day
		want Day
	}{
		{Monday, Tuesday},
		{Wednesday, Thursday},
		{Saturday, Sunday},
		{Sunday, Monday},
		{Day("Funday"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.day), func(t *testing.T) {
			if got := NextDay(tt.day); got != tt.want {
				t.Errorf("NextDay(%q) = %q, want %q", tt.day, got, tt.want)
			}
		})
	}
}

func TestNextDay_FullCycle(t *testing.T) {
	d := Monday
	for range 7 {
		d = NextDay(d)
	}
	if d != Monday {
		t.Errorf("seven steps from Monday landed on %q", d)
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		input string
		want  Day
	}{
		{"Monday", Monday},
		{"sunday", Sunday},
		{" FRIDAY ", Friday},
		{"tue", Tuesday},
		{"Sat", Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if err != nil {
				t.Fatalf("ParseDay(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDay_Invalid(t *testing.T) {
	for _, input := range []string{"", "mo", "thurs", "Someday"} {
		if _, err := ParseDay(input); !errors.Is(err, ErrInvalidDay) {
			t.Errorf("ParseDay(%q) error = %v, want ErrInvalidDay", input, err)
		}
	}
}

func TestDay_Short(t *testing.T) {
	if got := Wednesday.Short(); got != "Wed" {
		t.Errorf("Short() = %q, want Wed", got)
	}
	if got := Day("x").Short(); got != "" {
		t.Errorf("Short() on invalid day = %q, want empty", got)
	}
}

func TestDayOf(t *testing.T) {
	// January 13, 2025 is a Monday
	base := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
	for i, want := range Days {
		if got := DayOf(base.AddDate(0, 0, i)); got != want {
			t.Errorf("DayOf(+%d) = %q, want %q", i, got, want)
		}
	}
}
