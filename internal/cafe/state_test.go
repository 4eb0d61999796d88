package cafe

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/klabast/wb-services/controle-cafe/internal/store"
)

var testToday = time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)

func newTestState(t *testing.T, kv store.KV) *State {
	t.Helper()
	return Open(context.Background(), kv, zaptest.NewLogger(t), WithClock(func() time.Time { return testToday }))
}

// failingKV accepts reads but rejects every write
type failingKV struct{ *store.MemoryStore }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func TestOpenDefaults(t *testing.T) {
	s := newTestState(t, store.NewMemoryStore())

	if len(s.Participants("")) != 0 {
		t.Error("New state should have no participants")
	}
	if len(s.Week()) != 0 {
		t.Error("New state should have no week attendance")
	}
	if s.Quota() != (Quota{}) {
		t.Errorf("Quota() = %+v, want zero", s.Quota())
	}
	if len(s.Menus()) != len(Days) {
		t.Errorf("Menus() has %d days, want %d", len(s.Menus()), len(Days))
	}
	for _, name := range Flags {
		if v, ok := s.Flags()[name]; !ok || v {
			t.Errorf("Flag %s = %v, %v, want false, true", name, v, ok)
		}
	}
}

func TestOpenCorruptValues(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	for _, key := range []string{KeyParticipants, KeyAttendance, KeyWeekAttendance, KeyMenus, KeySaturdayConfig, FlagShowReport} {
		if err := kv.Set(ctx, key, []byte("{not json")); err != nil {
			t.Fatal(err)
		}
	}

	s := newTestState(t, kv)

	if len(s.Participants("")) != 0 || len(s.Week()) != 0 || s.Quota() != (Quota{}) {
		t.Error("Corrupt values should fall back to defaults")
	}
	if len(s.Menus()) != len(Days) {
		t.Error("Corrupt menus should fall back to the default menus")
	}
	if _, err := kv.Get(ctx, KeyWeekAttendance); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Corrupt key should be removed, Get() error = %v", err)
	}
}

func TestOpenNullAndNegative(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	_ = kv.Set(ctx, KeyParticipants, []byte("null"))
	_ = kv.Set(ctx, KeyWeekAttendance, []byte(`{"Segunda-Manhã":[],"Terça-Tarde":["Elza"]}`))
	_ = kv.Set(ctx, KeySaturdayConfig, []byte(`{"andarCima":-4,"andarBaixo":2}`))

	s := newTestState(t, kv)

	if ps := s.Participants(""); ps == nil {
		t.Error("Participants() should be an empty list, not nil")
	}
	if w := s.Week(); len(w) != 1 {
		t.Errorf("Week() = %v, want only Terça-Tarde (empty lists are not kept)", w)
	}
	if q := s.Quota(); q != (Quota{AndarCima: 0, AndarBaixo: 2}) {
		t.Errorf("Quota() = %+v, want {0 2}", q)
	}
}

func TestStatePersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	s := newTestState(t, kv)

	p, ok := s.AddParticipant(ctx, "Elza", Lower)
	if !ok {
		t.Fatal("AddParticipant() failed")
	}
	if err := s.SetPeople(ctx, Monday, Morning, []string{"Alessandro", "André Aurelio"}); err != nil {
		t.Fatal(err)
	}
	s.SetQuota(ctx, Quota{AndarCima: 4, AndarBaixo: -1})
	if _, err := s.ToggleMark(ctx, Tuesday, Afternoon, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddMenuItem(ctx, Monday, Morning, "Pão de queijo"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFlag(ctx, FlagShowReport, true); err != nil {
		t.Fatal(err)
	}

	// A fresh state on the same store sees everything
	r := newTestState(t, kv)

	if ps := r.Participants(""); len(ps) != 1 || ps[0].ID != p.ID {
		t.Errorf("Participants() = %+v", ps)
	}
	if got := r.Week().People(Monday, Morning); len(got) != 2 {
		t.Errorf("Week() Monday morning = %v", got)
	}
	if q := r.Quota(); q != (Quota{AndarCima: 4}) {
		t.Errorf("Quota() = %+v, want {4 0}", q)
	}
	if rows := r.Rows(Tuesday, ""); len(rows) != 1 || !rows[0].Afternoon {
		t.Errorf("Rows(Tuesday) = %+v", rows)
	}
	if items := r.Menus().Items(Monday, Morning); len(items) != 1 {
		t.Errorf("Menus() Monday morning = %v", items)
	}
	if !r.Flags()[FlagShowReport] {
		t.Error("showReport flag should be persisted")
	}
}

func TestStateWriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	s := newTestState(t, failingKV{store.NewMemoryStore()})

	if err := s.SetPeople(ctx, Monday, Morning, []string{"Alessandro"}); err != nil {
		t.Fatalf("SetPeople() should not surface write errors, got %v", err)
	}
	if got := s.Week().People(Monday, Morning); len(got) != 1 {
		t.Errorf("In-memory value should be kept after a failed write, got %v", got)
	}
}

func TestStateParticipants(t *testing.T) {
	ctx := context.Background()
	s := newTestState(t, store.NewMemoryStore())

	if _, ok := s.AddParticipant(ctx, "  ", Upper); ok {
		t.Error("Blank name should be ignored")
	}
	if _, ok := s.AddParticipant(ctx, "Bruno", ""); ok {
		t.Error("Missing floor should be ignored")
	}

	b, _ := s.AddParticipant(ctx, "Bruno", Lower)
	a, _ := s.AddParticipant(ctx, "Ana", Upper)
	_, _ = s.AddParticipant(ctx, "Ana", Upper) // no uniqueness check

	all := s.Participants("")
	if len(all) != 3 || all[0].Name != "Ana" || all[2].Name != "Bruno" {
		t.Errorf("Participants() = %+v", all)
	}
	if upper := s.Participants(Upper); len(upper) != 2 {
		t.Errorf("Participants(cima) has %d, want 2", len(upper))
	}

	edited, ok := s.EditParticipant(ctx, b.ID, ParticipantUpdate{Name: "Bruno C", Floor: Upper, VacationStart: "2025-07-01", VacationEnd: "2025-07-31"})
	if !ok || edited.Name != "Bruno C" || edited.Floor != Upper {
		t.Errorf("EditParticipant() = %+v, %v", edited, ok)
	}
	if _, ok := s.EditParticipant(ctx, "missing", ParticipantUpdate{Name: "X", Floor: Upper}); ok {
		t.Error("EditParticipant() with unknown ID should be ignored")
	}
	if _, ok := s.EditParticipant(ctx, b.ID, ParticipantUpdate{Name: "", Floor: Upper}); ok {
		t.Error("EditParticipant() without name should be ignored")
	}

	// Marks survive deletion of the participant
	if _, err := s.ToggleMark(ctx, Monday, Morning, a.ID); err != nil {
		t.Fatal(err)
	}
	if !s.DeleteParticipant(ctx, a.ID) {
		t.Fatal("DeleteParticipant() failed")
	}
	if s.DeleteParticipant(ctx, a.ID) {
		t.Error("Deleting twice should report false")
	}
	if !s.daily.Mark(Monday, a.ID).Breakfast {
		t.Error("Attendance history should not be scrubbed on delete")
	}
	if len(s.Participants("")) != 2 {
		t.Errorf("Participants() after delete has %d, want 2", len(s.Participants("")))
	}
}

func TestStateToggleMark(t *testing.T) {
	ctx := context.Background()
	s := newTestState(t, store.NewMemoryStore())

	p, _ := s.AddParticipant(ctx, "Elza", Lower)
	v, _ := s.AddParticipant(ctx, "Celso", Lower)
	s.EditParticipant(ctx, v.ID, ParticipantUpdate{Name: "Celso", Floor: Lower, VacationStart: "2025-07-01", VacationEnd: "2025-07-31"})

	if _, err := s.ToggleMark(ctx, Monday, Morning, "nobody"); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("ToggleMark(unknown) error = %v, want ErrParticipantNotFound", err)
	}
	if _, err := s.ToggleMark(ctx, Saturday, Afternoon, p.ID); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("ToggleMark(Saturday afternoon) error = %v, want ErrUnknownSlot", err)
	}

	m, err := s.ToggleMark(ctx, Monday, Morning, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if m.Breakfast {
		t.Error("Participants on vacation should not be marked")
	}

	m, err = s.SetObservation(ctx, Monday, p.ID, "vem às 9h")
	if err != nil || m.Observation != "vem às 9h" {
		t.Errorf("SetObservation() = %+v, %v", m, err)
	}
	if _, err := s.SetObservation(ctx, Monday, "nobody", "x"); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("SetObservation(unknown) error = %v, want ErrParticipantNotFound", err)
	}

	rows := s.Rows(Monday, "")
	if len(rows) != 2 || !rows[0].OnVacation || rows[1].Observation != "vem às 9h" {
		t.Errorf("Rows() = %+v", rows)
	}
}

func TestStateFlagsAndMenus(t *testing.T) {
	ctx := context.Background()
	s := newTestState(t, store.NewMemoryStore())

	if err := s.SetFlag(ctx, "darkMode", true); !errors.Is(err, ErrUnknownFlag) {
		t.Errorf("SetFlag(darkMode) error = %v, want ErrUnknownFlag", err)
	}

	if ok, _ := s.AddMenuItem(ctx, Friday, Afternoon, "Salgado"); !ok {
		t.Error("AddMenuItem() should succeed")
	}
	if ok, _ := s.RemoveMenuItem(ctx, Friday, Afternoon, 3); ok {
		t.Error("RemoveMenuItem() out of range should be ignored")
	}
	if ok, _ := s.RemoveMenuItem(ctx, Friday, Afternoon, 0); !ok {
		t.Error("RemoveMenuItem(0) should succeed")
	}
	if _, err := s.AddMenuItem(ctx, Saturday, Afternoon, "Bolo"); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("AddMenuItem(Saturday afternoon) error = %v, want ErrUnknownSlot", err)
	}

	// Menus() is a copy
	m := s.Menus()
	m[Monday] = DayMenu{Breakfast: []string{"x"}}
	if len(s.Menus().Items(Monday, Morning)) != 0 {
		t.Error("Mutating Menus() result should not affect state")
	}
}

func TestStateReports(t *testing.T) {
	ctx := context.Background()
	s := newTestState(t, store.NewMemoryStore())

	v, _ := s.AddParticipant(ctx, "Visitante", Upper)
	_ = s.SetPeople(ctx, Monday, Morning, []string{"Alessandro", "André Aurelio", "Visitante"})
	s.SetQuota(ctx, Quota{AndarCima: 2, AndarBaixo: 2})
	_, _ = s.ToggleMark(ctx, Thursday, Morning, v.ID)

	wr := s.WeekReport()
	if wr.Slots[0].Totals != (Totals{Total: 3, Upper: 2, Lower: 1}) {
		t.Errorf("Monday morning = %+v, want registered participant counted on their floor", wr.Slots[0].Totals)
	}
	if wr.Week.Total != 7 {
		t.Errorf("Week total = %d, want 7", wr.Week.Total)
	}

	dr := s.DailyReport()
	if dr.Days[3].Breakfast.Total != 1 || dr.Days[3].Breakfast.Upper != 1 {
		t.Errorf("Thursday breakfast = %+v", dr.Days[3].Breakfast)
	}
}
