package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/pillars/internal/schedule"
)

func TestParseDay(t *testing.T) {
	// Wednesday
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		input   string
		want    schedule.Day
		wantErr bool
	}{
		{input: "today", want: schedule.Wednesday},
		{input: " Today ", want: schedule.Wednesday},
		{input: "tue", want: schedule.Tuesday},
		{input: "Sunday", want: schedule.Sunday},
		{input: "tomorrow", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseDay(tc.input, now)
			if tc.wantErr {
				if !errors.Is(err, schedule.ErrInvalidDay) {
					t.Errorf("parseDay(%q) error = %v, want ErrInvalidDay", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDay(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("parseDay(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}
