package dayoff

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/crewapp/crew-scheduler/internal/httperr"
)

// Occurrence is one expanded [init, end] interval of a series.
type Occurrence struct {
	InitHour time.Time
	EndHour  time.Time
}

func frequency(rt RepeatType) (rrule.Frequency, error) {
	switch rt {
	case RepeatDaily:
		return rrule.DAILY, nil
	case RepeatWeekly:
		return rrule.WEEKLY, nil
	case RepeatMonthly:
		return rrule.MONTHLY, nil
	case RepeatYearly:
		return rrule.YEARLY, nil
	}
	return 0, httperr.ErrBusiness("invalid_repeat_type")
}

// Expand materializes the bounded series started by [init, end]: count
// occurrences at the given cadence, each keeping the base duration. A
// non-recurring entry (RepeatNone or count 1) expands to itself.
//
// Expansion happens at creation time; scope-limited mutations afterwards
// operate on the stored occurrence rows, never on a rule.
func Expand(init, end time.Time, rt RepeatType, count int) ([]Occurrence, error) {
	if end.Before(init) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	if rt == RepeatNone || count <= 1 {
		return []Occurrence{{InitHour: init, EndHour: end}}, nil
	}

	freq, err := frequency(rt)
	if err != nil {
		return nil, err
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Count:   count,
		Dtstart: init,
	})
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_recurrence")
	}

	duration := end.Sub(init)
	starts := rule.All()

	out := make([]Occurrence, 0, len(starts))
	for _, s := range starts {
		out = append(out, Occurrence{
			InitHour: s,
			EndHour:  s.Add(duration),
		})
	}

	return out, nil
}
