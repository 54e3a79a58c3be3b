package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/crewapp/crew-scheduler/internal/dateutil"
	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/models"
)

// State is where the editor currently is in its lifecycle.
type State int

const (
	// StateCreate edits a fresh draft for the clicked day.
	StateCreate State = iota
	// StateEdit edits an existing non-recurring occurrence.
	StateEdit
	// StateEditRecurring edits an occurrence that belongs to a series.
	StateEditRecurring
	// StateConfirmScope waits for the user to pick single/future/all.
	StateConfirmScope
	// StateDone means the editor finished and should be closed.
	StateDone
)

// Action is the mutation waiting for a scope choice.
type Action int

const (
	ActionNone Action = iota
	ActionUpdate
	ActionDelete
)

var (
	// ErrBusy is returned while a request is already in flight.
	ErrBusy = errors.New("editor: request in flight")
	// ErrActionPending is returned when a second mutation is triggered
	// before the pending one got its scope.
	ErrActionPending = errors.New("editor: another action awaits scope confirmation")
)

// Store is the part of the API the editor needs.
type Store interface {
	CreateDayOff(p DayOffPayload) (*models.DayOff, error)
	UpdateDayOff(id uint, scope domain.Scope, p DayOffPayload) (*models.DayOff, error)
	DeleteDayOff(id uint, scope domain.Scope) error
	MonthDayOffs(year int, month time.Month) ([]models.DayOff, error)
}

var _ Store = (*Client)(nil)

// Draft holds the form fields as the user types them: dates in DD/MM/YYYY
// and clocks in HH:MM.
type Draft struct {
	InitDate    string
	InitTime    string
	EndDate     string
	EndTime     string
	Repeat      bool
	RepeatType  string
	RepeatValue string
}

// Editor drives one open day-off modal. Mutations on recurring entries go
// through StateConfirmScope before hitting the store; everything else runs
// directly. Only one request may be in flight at a time.
type Editor struct {
	store    Store
	state    State
	existing *models.DayOff

	Form Draft

	pendingAction Action
	busy          bool
	refresh       func() error
}

// NewEditor opens an editor for the given day. A nil existing entry starts
// a create draft with the default working window; otherwise the entry's
// own interval is loaded into the form.
func NewEditor(store Store, day time.Time, existing *models.DayOff) *Editor {
	ed := &Editor{store: store, existing: existing}

	if existing == nil {
		ed.state = StateCreate
		ed.Form = Draft{
			InitDate: dateutil.FormatDisplayDate(day),
			InitTime: "08:00",
			EndDate:  dateutil.FormatDisplayDate(day),
			EndTime:  "18:00",
		}
		return ed
	}

	if existing.Repeat && existing.SeriesID != "" {
		ed.state = StateEditRecurring
	} else {
		ed.state = StateEdit
	}

	ed.Form = Draft{
		InitDate:    dateutil.FormatDisplayDate(existing.InitHour),
		InitTime:    dateutil.DisplayTime(existing.InitHour),
		EndDate:     dateutil.FormatDisplayDate(existing.EndHour),
		EndTime:     dateutil.DisplayTime(existing.EndHour),
		Repeat:      existing.Repeat,
		RepeatType:  existing.RepeatType,
		RepeatValue: existing.RepeatValue,
	}
	return ed
}

// CurrentState returns the current lifecycle state.
func (e *Editor) CurrentState() State {
	return e.state
}

// Busy reports whether a request is in flight.
func (e *Editor) Busy() bool {
	return e.busy
}

// PendingAction returns the mutation awaiting scope confirmation.
func (e *Editor) PendingAction() Action {
	return e.pendingAction
}

// SetRefresh registers the callback invoked after a successful mutation.
func (e *Editor) SetRefresh(fn func() error) {
	e.refresh = fn
}

// The Type* setters run raw keystrokes through the input masks, so the form
// always holds DD/MM/YYYY dates and HH:MM clocks.

func (e *Editor) TypeInitDate(raw string) { e.Form.InitDate = dateutil.MaskDate(raw) }
func (e *Editor) TypeEndDate(raw string)  { e.Form.EndDate = dateutil.MaskDate(raw) }
func (e *Editor) TypeInitTime(raw string) { e.Form.InitTime = dateutil.MaskTime(raw) }
func (e *Editor) TypeEndTime(raw string)  { e.Form.EndTime = dateutil.MaskTime(raw) }

func (e *Editor) payload() (DayOffPayload, error) {
	init, err := dateutil.CombineLocal(dateutil.ParseDisplayDate(e.Form.InitDate), e.Form.InitTime)
	if err != nil {
		return DayOffPayload{}, fmt.Errorf("invalid start: %w", err)
	}

	end, err := dateutil.CombineLocal(dateutil.ParseDisplayDate(e.Form.EndDate), e.Form.EndTime)
	if err != nil {
		return DayOffPayload{}, fmt.Errorf("invalid end: %w", err)
	}

	p := DayOffPayload{
		InitHour: init,
		EndHour:  end,
		Repeat:   e.Form.Repeat,
	}
	if e.Form.Repeat {
		p.RepeatType = e.Form.RepeatType
		p.RepeatValue = e.Form.RepeatValue
	}
	return p, nil
}

// Save submits a create draft.
func (e *Editor) Save() error {
	if e.state != StateCreate {
		return fmt.Errorf("editor: save only applies to a create draft")
	}

	p, err := e.payload()
	if err != nil {
		return err
	}

	return e.runBusy(func() error {
		if _, err := e.store.CreateDayOff(p); err != nil {
			return err
		}
		return e.finish()
	})
}

// Update submits the edited interval. For recurring entries it parks the
// action and waits for a scope choice.
func (e *Editor) Update() error {
	switch e.state {
	case StateEdit:
		p, err := e.payload()
		if err != nil {
			return err
		}
		return e.runBusy(func() error {
			if _, err := e.store.UpdateDayOff(e.existing.ID, domain.ScopeSingle, p); err != nil {
				return err
			}
			return e.finish()
		})
	case StateEditRecurring:
		if e.busy {
			return ErrBusy
		}
		if e.pendingAction != ActionNone {
			return ErrActionPending
		}
		if _, err := e.payload(); err != nil {
			return err
		}
		e.pendingAction = ActionUpdate
		e.state = StateConfirmScope
		return nil
	default:
		return fmt.Errorf("editor: nothing to update")
	}
}

// Delete removes the entry. For recurring entries it parks the action and
// waits for a scope choice.
func (e *Editor) Delete() error {
	switch e.state {
	case StateEdit:
		return e.runBusy(func() error {
			if err := e.store.DeleteDayOff(e.existing.ID, domain.ScopeSingle); err != nil {
				return err
			}
			return e.finish()
		})
	case StateEditRecurring:
		if e.busy {
			return ErrBusy
		}
		if e.pendingAction != ActionNone {
			return ErrActionPending
		}
		e.pendingAction = ActionDelete
		e.state = StateConfirmScope
		return nil
	default:
		return fmt.Errorf("editor: nothing to delete")
	}
}

// ConfirmScope runs the parked mutation with the chosen scope.
func (e *Editor) ConfirmScope(scope domain.Scope) error {
	if e.state != StateConfirmScope {
		return fmt.Errorf("editor: no action awaiting scope")
	}

	action := e.pendingAction

	return e.runBusy(func() error {
		var err error
		switch action {
		case ActionUpdate:
			var p DayOffPayload
			p, err = e.payload()
			if err == nil {
				_, err = e.store.UpdateDayOff(e.existing.ID, scope, p)
			}
		case ActionDelete:
			err = e.store.DeleteDayOff(e.existing.ID, scope)
		default:
			err = fmt.Errorf("editor: no pending action")
		}
		if err != nil {
			return err
		}

		e.pendingAction = ActionNone
		return e.finish()
	})
}

// CancelScope backs out of the scope prompt. The form keeps whatever the
// user typed.
func (e *Editor) CancelScope() {
	if e.state != StateConfirmScope {
		return
	}
	e.pendingAction = ActionNone
	e.state = StateEditRecurring
}

// runBusy guards fn with the busy flag so a double click cannot fire two
// requests. A failed fn leaves the editor open in its current state.
func (e *Editor) runBusy(fn func() error) error {
	if e.busy {
		return ErrBusy
	}
	e.busy = true
	defer func() { e.busy = false }()

	return fn()
}

// finish marks the editor done and refetches the caller's view.
func (e *Editor) finish() error {
	e.state = StateDone
	if e.refresh != nil {
		return e.refresh()
	}
	return nil
}
