package cafe

import (
	"fmt"
	"time"
)

// Mark is one participant's attendance on one day
type Mark struct {
	Breakfast   bool   `json:"breakfast"`
	Afternoon   bool   `json:"afternoon"`
	Observation string `json:"observation,omitempty"`
}

func (m Mark) empty() bool {
	return !m.Breakfast && !m.Afternoon && m.Observation == ""
}

// DailyAttendance holds per-day, per-participant marks keyed by participant ID.
// Marks that carry nothing are not stored.
type DailyAttendance map[Day]map[string]Mark

// Mark returns the stored mark, or the zero mark
func (a DailyAttendance) Mark(d Day, id string) Mark {
	return a[d][id]
}

// Toggle flips the breakfast or afternoon flag and returns the new mark
func (a DailyAttendance) Toggle(d Day, p Period, id string) (Mark, error) {
	if !HasSlot(d, p) {
		return Mark{}, fmt.Errorf("%w: %s", ErrUnknownSlot, SlotKey(d, p))
	}

	m := a.Mark(d, id)
	switch p {
	case Morning:
		m.Breakfast = !m.Breakfast
	case Afternoon:
		m.Afternoon = !m.Afternoon
	}
	a.put(d, id, m)
	return m, nil
}

// SetObservation replaces the free-text observation
func (a DailyAttendance) SetObservation(d Day, id, text string) (Mark, error) {
	if _, ok := weekSlots[d]; !ok {
		return Mark{}, fmt.Errorf("%w: day %q", ErrUnknownSlot, d)
	}
	m := a.Mark(d, id)
	m.Observation = text
	a.put(d, id, m)
	return m, nil
}

func (a DailyAttendance) put(d Day, id string, m Mark) {
	if m.empty() {
		delete(a[d], id)
		if len(a[d]) == 0 {
			delete(a, d)
		}
		return
	}
	if a[d] == nil {
		a[d] = make(map[string]Mark)
	}
	a[d][id] = m
}

// Clone returns a deep copy
func (a DailyAttendance) Clone() DailyAttendance {
	out := make(DailyAttendance, len(a))
	for d, marks := range a {
		cp := make(map[string]Mark, len(marks))
		for id, m := range marks {
			cp[id] = m
		}
		out[d] = cp
	}
	return out
}

// Row is one line of the dashboard attendance table
type Row struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Floor         Floor  `json:"floor"`
	Breakfast     bool   `json:"breakfast"`
	Afternoon     bool   `json:"afternoon"`
	Observation   string `json:"observation"`
	OnVacation    bool   `json:"onVacation"`
	VacationStart string `json:"vacationStart,omitempty"`
	VacationEnd   string `json:"vacationEnd,omitempty"`
}

// Rows joins the participants with their marks for day d, sorted by name.
// A non-empty floor restricts the table to that floor.
func Rows(ps []Participant, a DailyAttendance, d Day, f Floor, today time.Time) []Row {
	sorted := FilterByFloor(ps, f)
	SortByName(sorted)

	rows := make([]Row, 0, len(sorted))
	for _, p := range sorted {
		m := a.Mark(d, p.ID)
		rows = append(rows, Row{
			ID:            p.ID,
			Name:          p.Name,
			Floor:         p.Floor,
			Breakfast:     m.Breakfast,
			Afternoon:     m.Afternoon,
			Observation:   m.Observation,
			OnVacation:    p.OnVacation(today),
			VacationStart: p.VacationStart,
			VacationEnd:   p.VacationEnd,
		})
	}
	return rows
}
