package dateutil

import (
	"testing"
	"time"
)

func TestDisplayDateRoundTrip(t *testing.T) {
	tests := []struct {
		date  string
		clock string
	}{
		{"15/03/2024", "08:00"},
		{"15/03/2024", "18:00"},
		{"01/01/2025", "00:00"},
		{"31/12/2024", "23:59"},
		{"29/02/2024", "12:30"},
	}

	for _, tt := range tests {
		t.Run(tt.date+" "+tt.clock, func(t *testing.T) {
			instant, err := CombineLocal(ParseDisplayDate(tt.date), tt.clock)
			if err != nil {
				t.Fatalf("CombineLocal failed: %v", err)
			}

			if got := FormatDisplayDate(instant); got != tt.date {
				t.Errorf("FormatDisplayDate = %q, want %q", got, tt.date)
			}
			if got := DisplayTime(instant); got != tt.clock {
				t.Errorf("DisplayTime = %q, want %q", got, tt.clock)
			}
		})
	}
}

func TestCombineLocalKeepsWallClock(t *testing.T) {
	instant, err := CombineLocal("2024-03-15", "08:00")
	if err != nil {
		t.Fatalf("CombineLocal failed: %v", err)
	}

	if instant.Location() != time.UTC {
		t.Errorf("expected UTC instant, got %v", instant.Location())
	}

	local := instant.Local()
	if local.Hour() != 8 || local.Minute() != 0 {
		t.Errorf("local wall-clock = %02d:%02d, want 08:00", local.Hour(), local.Minute())
	}
	if local.Year() != 2024 || local.Month() != time.March || local.Day() != 15 {
		t.Errorf("local date = %v, want 2024-03-15", local.Format("2006-01-02"))
	}
}

func TestCombineLocalRejectsMalformed(t *testing.T) {
	if _, err := CombineLocal("2024-02-31", "08:00"); err == nil {
		t.Error("expected error for impossible date 2024-02-31")
	}
	if _, err := CombineLocal("2024-03-15", "25:99"); err == nil {
		t.Error("expected error for impossible clock 25:99")
	}
}

func TestParseDisplayDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"15/03/2024", "2024-03-15"},
		{"31/02/2024", "2024-02-31"}, // no calendar validation, by contract
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		if got := ParseDisplayDate(tt.input); got != tt.want {
			t.Errorf("ParseDisplayDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMaskDateProgressive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{"15", "15"},
		{"150", "15/0"},
		{"1503", "15/03"},
		{"15032", "15/03/2"},
		{"15032024", "15/03/2024"},
		{"150320249", "15/03/2024"}, // 9th digit rejected
		{"15/03/2024", "15/03/2024"},
		{"15a03b2024", "15/03/2024"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MaskDate(tt.input); got != tt.want {
			t.Errorf("MaskDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMaskTimeProgressive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"08", "08"},
		{"080", "08:0"},
		{"0800", "08:00"},
		{"08005", "08:00"}, // 5th digit rejected
		{"08:00", "08:00"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MaskTime(tt.input); got != tt.want {
			t.Errorf("MaskTime(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.Local)
	result := StartOfDay(input)

	if result.Hour() != 0 || result.Minute() != 0 || result.Second() != 0 {
		t.Errorf("StartOfDay(%v) = %v, want local midnight", input, result)
	}
	if !SameDay(input, result) {
		t.Errorf("StartOfDay changed the calendar day: %v -> %v", input, result)
	}
}
