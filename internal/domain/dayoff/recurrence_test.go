package dayoff

import (
	"testing"
	"time"

	"github.com/crewapp/crew-scheduler/internal/httperr"
)

func TestExpandNonRecurring(t *testing.T) {
	init := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	occ, err := Expand(init, end, RepeatNone, 1)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if !occ[0].InitHour.Equal(init) || !occ[0].EndHour.Equal(end) {
		t.Errorf("occurrence = %+v, want [%v, %v]", occ[0], init, end)
	}
}

func TestExpandCadences(t *testing.T) {
	init := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		repeatType RepeatType
		count      int
		secondInit time.Time
	}{
		{"daily", RepeatDaily, 3, time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)},
		{"weekly", RepeatWeekly, 4, time.Date(2024, 3, 22, 8, 0, 0, 0, time.UTC)},
		{"monthly", RepeatMonthly, 2, time.Date(2024, 4, 15, 8, 0, 0, 0, time.UTC)},
		{"yearly", RepeatYearly, 2, time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ, err := Expand(init, end, tt.repeatType, tt.count)
			if err != nil {
				t.Fatalf("Expand failed: %v", err)
			}

			if len(occ) != tt.count {
				t.Fatalf("expected %d occurrences, got %d", tt.count, len(occ))
			}
			if !occ[0].InitHour.Equal(init) {
				t.Errorf("first occurrence starts %v, want %v", occ[0].InitHour, init)
			}
			if !occ[1].InitHour.Equal(tt.secondInit) {
				t.Errorf("second occurrence starts %v, want %v", occ[1].InitHour, tt.secondInit)
			}

			wantDur := end.Sub(init)
			for i, o := range occ {
				if o.EndHour.Sub(o.InitHour) != wantDur {
					t.Errorf("occurrence %d duration = %v, want %v", i, o.EndHour.Sub(o.InitHour), wantDur)
				}
			}
		})
	}
}

func TestExpandRejectsInvertedRange(t *testing.T) {
	init := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	_, err := Expand(init, end, RepeatDaily, 3)
	if !httperr.IsBusiness(err, "invalid_time_range") {
		t.Errorf("expected invalid_time_range, got %v", err)
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{"", ScopeSingle, false},
		{"single", ScopeSingle, false},
		{"future", ScopeFuture, false},
		{"all", ScopeAll, false},
		{"everything", "", true},
	}

	for _, tt := range tests {
		got, err := ParseScope(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScope(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseScope(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseRepeatType(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly", "yearly"} {
		if _, err := ParseRepeatType(valid); err != nil {
			t.Errorf("ParseRepeatType(%q) unexpected error: %v", valid, err)
		}
	}

	if rt, err := ParseRepeatType("none"); err != nil || rt != RepeatNone {
		t.Errorf("ParseRepeatType(none) = %q, %v; want none alias accepted", rt, err)
	}
	if rt, err := ParseRepeatType(""); err != nil || rt != RepeatNone {
		t.Errorf("ParseRepeatType(\"\") = %q, %v; want RepeatNone", rt, err)
	}
	if _, err := ParseRepeatType("hourly"); !httperr.IsBusiness(err, "invalid_repeat_type") {
		t.Errorf("expected invalid_repeat_type, got %v", err)
	}
}

func TestParseOccurrenceCount(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"365", 365, false},
		{"0", 0, true},
		{"366", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseOccurrenceCount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOccurrenceCount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseOccurrenceCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCoversDayInclusiveRange(t *testing.T) {
	// Spans March 10..12 local, with non-midnight boundaries.
	init := time.Date(2024, 3, 10, 22, 30, 0, 0, time.Local)
	end := time.Date(2024, 3, 12, 1, 15, 0, 0, time.Local)

	covered := []time.Time{
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 11, 12, 0, 0, 0, time.Local),
		time.Date(2024, 3, 12, 23, 59, 0, 0, time.Local),
	}
	for _, d := range covered {
		if !CoversDay(init, end, d) {
			t.Errorf("expected %v to be covered", d.Format("2006-01-02"))
		}
	}

	outside := []time.Time{
		time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local),
		time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local),
	}
	for _, d := range outside {
		if CoversDay(init, end, d) {
			t.Errorf("expected %v to be outside the range", d.Format("2006-01-02"))
		}
	}
}
