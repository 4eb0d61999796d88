package cafe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/controle-cafe/internal/store"
)

// Storage keys
const (
	KeyParticipants   = "participants"
	KeyAttendance     = "attendance"
	KeyWeekAttendance = "weekAttendance"
	KeyMenus          = "menus"
	KeySaturdayConfig = "saturdayConfig"
	FlagShowReport    = "showReport"
	FlagKeepAddOpen   = "keepAddOpen"
)

// Flags lists the boolean UI flags; each is persisted under its own key
var Flags = []string{FlagShowReport, FlagKeepAddOpen}

// State is the complete application state. Every mutation is written
// through to the store; a failed write is logged and the in-memory value kept.
type State struct {
	kv  store.KV
	log *zap.Logger
	now func() time.Time

	mu           sync.RWMutex
	participants []Participant
	daily        DailyAttendance
	week         WeekAttendance
	menus        Menus
	quota        Quota
	flags        map[string]bool
}

// Option configures a State
type Option func(*State)

// WithClock replaces time.Now, used for vacation checks
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// Open loads every key from kv, substituting defaults for missing or corrupt values
func Open(ctx context.Context, kv store.KV, log *zap.Logger, opts ...Option) *State {
	s := &State{kv: kv, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.participants = store.LoadJSON(ctx, kv, KeyParticipants, []Participant{}, log)
	s.daily = store.LoadJSON(ctx, kv, KeyAttendance, DailyAttendance{}, log)
	s.week = store.LoadJSON(ctx, kv, KeyWeekAttendance, WeekAttendance{}, log)
	s.menus = store.LoadJSON(ctx, kv, KeyMenus, DefaultMenus(), log)
	s.quota = store.LoadJSON(ctx, kv, KeySaturdayConfig, Quota{}, log).Clamped()

	// JSON null decodes to nil maps and slices
	if s.participants == nil {
		s.participants = []Participant{}
	}
	if s.daily == nil {
		s.daily = DailyAttendance{}
	}
	if s.week == nil {
		s.week = WeekAttendance{}
	}
	if s.menus == nil {
		s.menus = DefaultMenus()
	}
	s.week.prune()

	s.flags = make(map[string]bool, len(Flags))
	for _, name := range Flags {
		s.flags[name] = store.LoadJSON(ctx, kv, name, false, log)
	}

	log.Info("State loaded",
		zap.Int("participants", len(s.participants)),
		zap.Int("week_slots", len(s.week)),
	)
	return s
}

// persist writes one key; caller holds the write lock
func (s *State) persist(ctx context.Context, key string, v any) {
	if err := store.SaveJSON(ctx, s.kv, key, v); err != nil {
		s.log.Error("Failed to persist state", zap.String("key", key), zap.Error(err))
	}
}

// Today returns the current time from the state clock
func (s *State) Today() time.Time {
	return s.now()
}

// ── Participants ──

// Participants returns the roster sorted by name, optionally restricted to one floor
func (s *State) Participants(f Floor) []Participant {
	s.mu.RLock()
	out := FilterByFloor(s.participants, f)
	s.mu.RUnlock()

	SortByName(out)
	return out
}

// AddParticipant registers a participant; ok is false when name or floor is missing
func (s *State) AddParticipant(ctx context.Context, name string, floor Floor) (Participant, bool) {
	p, ok := NewParticipant(name, floor)
	if !ok {
		return Participant{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.participants = append(s.participants, p)
	s.persist(ctx, KeyParticipants, s.participants)
	s.log.Info("Participant added", zap.String("id", p.ID), zap.String("name", p.Name))
	return p, true
}

// EditParticipant applies u; ok is false for an unknown ID or missing fields
func (s *State) EditParticipant(ctx context.Context, id string, u ParticipantUpdate) (Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findParticipant(s.participants, id)
	if i < 0 {
		return Participant{}, false
	}
	p, ok := u.Apply(s.participants[i])
	if !ok {
		return s.participants[i], false
	}

	s.participants[i] = p
	s.persist(ctx, KeyParticipants, s.participants)
	return p, true
}

// DeleteParticipant removes a participant. Attendance already recorded for
// them is left untouched.
func (s *State) DeleteParticipant(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findParticipant(s.participants, id)
	if i < 0 {
		return false
	}

	s.participants = append(s.participants[:i:i], s.participants[i+1:]...)
	s.persist(ctx, KeyParticipants, s.participants)
	s.log.Info("Participant deleted", zap.String("id", id))
	return true
}

// Directory indexes the static roster plus registered participants
func (s *State) Directory() *Directory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewDirectory(s.participants)
}

// ── Week grid ──

// Week returns a copy of the week attendance map
func (s *State) Week() WeekAttendance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.week.Clone()
}

// SetPeople replaces the people for a slot
func (s *State) SetPeople(ctx context.Context, d Day, p Period, people []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.week.SetPeople(d, p, people); err != nil {
		return err
	}
	s.persist(ctx, KeyWeekAttendance, s.week)
	return nil
}

// RemovePerson removes one person from a slot
func (s *State) RemovePerson(ctx context.Context, d Day, p Period, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.week.RemovePerson(d, p, name); err != nil {
		return err
	}
	s.persist(ctx, KeyWeekAttendance, s.week)
	return nil
}

// ── Saturday quota ──

// Quota returns the Saturday configuration
func (s *State) Quota() Quota {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quota
}

// SetQuota stores q with negative values clamped to zero
func (s *State) SetQuota(ctx context.Context, q Quota) Quota {
	q = q.Clamped()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.quota = q
	s.persist(ctx, KeySaturdayConfig, s.quota)
	return q
}

// ── Daily marks ──

// Rows returns the dashboard table for day d
func (s *State) Rows(d Day, f Floor) []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Rows(s.participants, s.daily, d, f, s.now())
}

// ToggleMark flips breakfast or afternoon for a participant.
// Participants on vacation keep their current mark.
func (s *State) ToggleMark(ctx context.Context, d Day, p Period, id string) (Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findParticipant(s.participants, id)
	if i < 0 {
		return Mark{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}
	if !HasSlot(d, p) {
		return Mark{}, fmt.Errorf("%w: %s", ErrUnknownSlot, SlotKey(d, p))
	}
	if s.participants[i].OnVacation(s.now()) {
		return s.daily.Mark(d, id), nil
	}

	m, err := s.daily.Toggle(d, p, id)
	if err != nil {
		return Mark{}, err
	}
	s.persist(ctx, KeyAttendance, s.daily)
	return m, nil
}

// SetObservation stores the free-text observation for a participant's day
func (s *State) SetObservation(ctx context.Context, d Day, id, text string) (Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if findParticipant(s.participants, id) < 0 {
		return Mark{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}

	m, err := s.daily.SetObservation(d, id, text)
	if err != nil {
		return Mark{}, err
	}
	s.persist(ctx, KeyAttendance, s.daily)
	return m, nil
}

// ── Menus ──

// Menus returns a copy of all menus
func (s *State) Menus() Menus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menus.Clone()
}

// AddMenuItem appends an item to a slot menu; ok is false for blank input
func (s *State) AddMenuItem(ctx context.Context, d Day, p Period, item string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.menus.AddItem(d, p, item)
	if err != nil || !ok {
		return ok, err
	}
	s.persist(ctx, KeyMenus, s.menus)
	return true, nil
}

// RemoveMenuItem deletes an item by index; ok is false when out of range
func (s *State) RemoveMenuItem(ctx context.Context, d Day, p Period, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.menus.RemoveItem(d, p, index)
	if err != nil || !ok {
		return ok, err
	}
	s.persist(ctx, KeyMenus, s.menus)
	return true, nil
}

// ── UI flags ──

// Flags returns the current value of every UI flag
func (s *State) Flags() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}

// SetFlag stores a UI flag
func (s *State) SetFlag(ctx context.Context, name string, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flags[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFlag, name)
	}
	s.flags[name] = v
	s.persist(ctx, name, v)
	return nil
}

// ── Reports ──

// WeekReport totals the week grid using the directory and the Saturday quota
func (s *State) WeekReport() WeekReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildWeekReport(s.week, s.quota, NewDirectory(s.participants))
}

// DailyReport totals the dashboard marks
func (s *State) DailyReport() DailyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildDailyReport(s.participants, s.daily, s.now())
}
