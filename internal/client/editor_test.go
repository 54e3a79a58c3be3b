package client

import (
	"errors"
	"testing"
	"time"

	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/models"
)

type updateCall struct {
	id    uint
	scope domain.Scope
	p     DayOffPayload
}

type deleteCall struct {
	id    uint
	scope domain.Scope
}

type fakeStore struct {
	created []DayOffPayload
	updated []updateCall
	deleted []deleteCall

	monthItems []models.DayOff
	monthCalls int

	failNext error

	onCreate func()
}

func (f *fakeStore) CreateDayOff(p DayOffPayload) (*models.DayOff, error) {
	if f.onCreate != nil {
		f.onCreate()
	}
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	f.created = append(f.created, p)
	return &models.DayOff{ID: 1, InitHour: p.InitHour, EndHour: p.EndHour, Repeat: p.Repeat}, nil
}

func (f *fakeStore) UpdateDayOff(id uint, scope domain.Scope, p DayOffPayload) (*models.DayOff, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	f.updated = append(f.updated, updateCall{id: id, scope: scope, p: p})
	return &models.DayOff{ID: id, InitHour: p.InitHour, EndHour: p.EndHour}, nil
}

func (f *fakeStore) DeleteDayOff(id uint, scope domain.Scope) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	f.deleted = append(f.deleted, deleteCall{id: id, scope: scope})
	return nil
}

func (f *fakeStore) MonthDayOffs(year int, month time.Month) ([]models.DayOff, error) {
	f.monthCalls++
	return f.monthItems, nil
}

func (f *fakeStore) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

var _ Store = (*fakeStore)(nil)

func recurringEntry() *models.DayOff {
	return &models.DayOff{
		ID:         7,
		SeriesID:   "b9a4f2ad-1111-4222-8333-444455556666",
		InitHour:   time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local),
		EndHour:    time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local),
		Repeat:     true,
		RepeatType: "weekly",
	}
}

func singleEntry() *models.DayOff {
	return &models.DayOff{
		ID:       3,
		InitHour: time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local),
		EndHour:  time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local),
	}
}

func TestNewEditorCreateDefaults(t *testing.T) {
	store := &fakeStore{}
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

	ed := NewEditor(store, day, nil)

	if ed.CurrentState() != StateCreate {
		t.Fatalf("state = %v, want StateCreate", ed.CurrentState())
	}
	if ed.Form.InitDate != "15/03/2024" || ed.Form.EndDate != "15/03/2024" {
		t.Errorf("dates = %q / %q, want 15/03/2024", ed.Form.InitDate, ed.Form.EndDate)
	}
	if ed.Form.InitTime != "08:00" || ed.Form.EndTime != "18:00" {
		t.Errorf("times = %q / %q, want 08:00 / 18:00", ed.Form.InitTime, ed.Form.EndTime)
	}
}

func TestSaveCreatesAndFinishes(t *testing.T) {
	store := &fakeStore{}
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

	refreshed := false
	ed := NewEditor(store, day, nil)
	ed.SetRefresh(func() error {
		refreshed = true
		return nil
	})

	if err := ed.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d entries, want 1", len(store.created))
	}
	if ed.CurrentState() != StateDone {
		t.Errorf("state = %v, want StateDone", ed.CurrentState())
	}
	if !refreshed {
		t.Error("refresh was not called after save")
	}

	got := store.created[0].InitHour.In(time.Local)
	if got.Hour() != 8 || got.Day() != 15 {
		t.Errorf("init hour = %v, want local 15th 08:00", got)
	}
}

func TestUpdateSingleGoesDirect(t *testing.T) {
	store := &fakeStore{}
	ed := NewEditor(store, time.Now(), singleEntry())

	if ed.CurrentState() != StateEdit {
		t.Fatalf("state = %v, want StateEdit", ed.CurrentState())
	}

	ed.Form.EndTime = "17:00"
	if err := ed.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(store.updated) != 1 {
		t.Fatalf("updated %d entries, want 1", len(store.updated))
	}
	if store.updated[0].scope != domain.ScopeSingle {
		t.Errorf("scope = %q, want single", store.updated[0].scope)
	}
	if ed.CurrentState() != StateDone {
		t.Errorf("state = %v, want StateDone", ed.CurrentState())
	}
}

func TestUpdateRecurringWaitsForScope(t *testing.T) {
	store := &fakeStore{}
	ed := NewEditor(store, time.Now(), recurringEntry())

	if ed.CurrentState() != StateEditRecurring {
		t.Fatalf("state = %v, want StateEditRecurring", ed.CurrentState())
	}

	if err := ed.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if ed.CurrentState() != StateConfirmScope {
		t.Fatalf("state = %v, want StateConfirmScope", ed.CurrentState())
	}
	if len(store.updated) != 0 {
		t.Fatalf("store touched before scope confirmation")
	}

	if err := ed.ConfirmScope(domain.ScopeFuture); err != nil {
		t.Fatalf("ConfirmScope: %v", err)
	}
	if len(store.updated) != 1 {
		t.Fatalf("updated %d entries, want 1", len(store.updated))
	}
	if store.updated[0].scope != domain.ScopeFuture {
		t.Errorf("scope = %q, want future", store.updated[0].scope)
	}
	if store.updated[0].id != 7 {
		t.Errorf("id = %d, want 7", store.updated[0].id)
	}
}

func TestDeleteRecurringWaitsForScope(t *testing.T) {
	store := &fakeStore{}
	ed := NewEditor(store, time.Now(), recurringEntry())

	if err := ed.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ed.PendingAction() != ActionDelete {
		t.Fatalf("pending = %v, want ActionDelete", ed.PendingAction())
	}

	if err := ed.ConfirmScope(domain.ScopeAll); err != nil {
		t.Fatalf("ConfirmScope: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0].scope != domain.ScopeAll {
		t.Fatalf("deleted = %+v, want one call with scope all", store.deleted)
	}
}

func TestSecondActionRejectedWhilePending(t *testing.T) {
	store := &fakeStore{}
	ed := NewEditor(store, time.Now(), recurringEntry())

	if err := ed.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := ed.Delete(); !errors.Is(err, ErrActionPending) {
		t.Fatalf("Delete while pending = %v, want ErrActionPending", err)
	}
	if err := ed.Update(); err == nil {
		t.Fatal("second Update while pending succeeded")
	}
}

func TestCancelScopeKeepsDraft(t *testing.T) {
	store := &fakeStore{}
	ed := NewEditor(store, time.Now(), recurringEntry())

	ed.Form.EndTime = "16:30"
	if err := ed.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	ed.CancelScope()

	if ed.CurrentState() != StateEditRecurring {
		t.Errorf("state = %v, want StateEditRecurring", ed.CurrentState())
	}
	if ed.PendingAction() != ActionNone {
		t.Errorf("pending = %v, want ActionNone", ed.PendingAction())
	}
	if ed.Form.EndTime != "16:30" {
		t.Errorf("draft end time = %q, want 16:30", ed.Form.EndTime)
	}
	if len(store.updated) != 0 {
		t.Error("store touched after cancel")
	}
}

func TestBusyRejectsReentrantSubmit(t *testing.T) {
	store := &fakeStore{}
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	ed := NewEditor(store, day, nil)

	var reentrant error
	store.onCreate = func() {
		reentrant = ed.Save()
	}

	if err := ed.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !errors.Is(reentrant, ErrBusy) {
		t.Fatalf("reentrant Save = %v, want ErrBusy", reentrant)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d entries, want 1", len(store.created))
	}
}

func TestTypeSettersApplyMasks(t *testing.T) {
	store := &fakeStore{}
	ed := NewEditor(store, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), nil)

	ed.TypeInitDate("15032024")
	ed.TypeInitTime("0830")
	ed.TypeEndDate("1603")
	ed.TypeEndTime("18x:00")

	if ed.Form.InitDate != "15/03/2024" {
		t.Errorf("init date = %q, want 15/03/2024", ed.Form.InitDate)
	}
	if ed.Form.InitTime != "08:30" {
		t.Errorf("init time = %q, want 08:30", ed.Form.InitTime)
	}
	if ed.Form.EndDate != "16/03" {
		t.Errorf("end date = %q, want 16/03", ed.Form.EndDate)
	}
	if ed.Form.EndTime != "18:00" {
		t.Errorf("end time = %q, want 18:00", ed.Form.EndTime)
	}
}

func TestFailedRequestKeepsEditorOpen(t *testing.T) {
	store := &fakeStore{failNext: errors.New("boom")}
	ed := NewEditor(store, time.Now(), singleEntry())

	refreshed := false
	ed.SetRefresh(func() error {
		refreshed = true
		return nil
	})

	if err := ed.Update(); err == nil {
		t.Fatal("Update succeeded despite store error")
	}
	if ed.CurrentState() != StateEdit {
		t.Errorf("state = %v, want StateEdit", ed.CurrentState())
	}
	if ed.Busy() {
		t.Error("busy flag stuck after failure")
	}
	if refreshed {
		t.Error("refresh called after failed request")
	}
}
