package dayoff

import (
	"strconv"
	"time"

	"github.com/crewapp/crew-scheduler/internal/dateutil"
	"github.com/crewapp/crew-scheduler/internal/httperr"
)

// ===============================
// Mutation scope
// ===============================

// Scope is the breadth of a recurring series affected by an edit or delete.
type Scope string

const (
	ScopeSingle Scope = "single"
	ScopeFuture Scope = "future"
	ScopeAll    Scope = "all"
)

// ParseScope interprets the ?mode= query value. An empty mode means single.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeSingle:
		return ScopeSingle, nil
	case ScopeFuture:
		return ScopeFuture, nil
	case ScopeAll:
		return ScopeAll, nil
	}
	return "", httperr.ErrBusiness("invalid_scope")
}

// ===============================
// Recurrence
// ===============================

type RepeatType string

const (
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"

	// RepeatNone is a legacy alias some stored rows carry instead of an
	// absent repeat_type. It never produces more than one occurrence.
	RepeatNone RepeatType = "none"
)

// ParseRepeatType accepts the four recurrence kinds the editor offers.
// "yearly" is a first-class value here even though older client builds
// declared it out of the stored enum.
func ParseRepeatType(s string) (RepeatType, error) {
	switch RepeatType(s) {
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return RepeatType(s), nil
	case "", RepeatNone:
		return RepeatNone, nil
	}
	return "", httperr.ErrBusiness("invalid_repeat_type")
}

// MaxOccurrences bounds a series to one year of daily repetitions.
const MaxOccurrences = 365

// ParseOccurrenceCount parses the textual repeat_value (the wire keeps it
// as a string) and enforces the 1..365 bound.
func ParseOccurrenceCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxOccurrences {
		return 0, httperr.ErrBusiness("invalid_repeat_value")
	}
	return n, nil
}

// ===============================
// Calendar containment
// ===============================

// CoversDay reports whether day falls inside [init, end] compared date-only:
// both boundaries and the probe are truncated to local midnight, so an entry
// spanning several days covers every day in the inclusive range no matter
// the time-of-day components.
func CoversDay(init, end, day time.Time) bool {
	d := dateutil.StartOfDay(day)
	s := dateutil.StartOfDay(init)
	e := dateutil.StartOfDay(end)
	return !d.Before(s) && !d.After(e)
}
