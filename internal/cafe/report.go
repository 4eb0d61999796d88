package cafe

import "time"

// Totals is a headcount split by floor.
// People with no known floor count towards Total only, so Upper+Lower <= Total.
type Totals struct {
	Total int `json:"total"`
	Upper int `json:"andarCima"`
	Lower int `json:"andarBaixo"`
}

func (t *Totals) add(o Totals) {
	t.Total += o.Total
	t.Upper += o.Upper
	t.Lower += o.Lower
}

func (t *Totals) count(f Floor, known bool) {
	t.Total++
	if !known {
		return
	}
	switch f {
	case Upper:
		t.Upper++
	case Lower:
		t.Lower++
	}
}

// SlotTotals is one report line of the week grid
type SlotTotals struct {
	Day    Day    `json:"day"`
	Period Period `json:"period"`
	Totals
}

// WeekReport aggregates the week grid
type WeekReport struct {
	Slots []SlotTotals `json:"slots"`
	Week  Totals       `json:"week"`
}

// SlotTotal counts one slot. The quota day uses the configured headcount
// and ignores any names stored for it.
func SlotTotal(w WeekAttendance, q Quota, dir *Directory, d Day, p Period) Totals {
	if d == QuotaDay && p == Morning {
		return Totals{Total: q.Total(), Upper: q.AndarCima, Lower: q.AndarBaixo}
	}

	var t Totals
	for _, name := range w[SlotKey(d, p)] {
		f, ok := dir.FloorOf(name)
		t.count(f, ok)
	}
	return t
}

// BuildWeekReport totals every scheduled slot in week order
func BuildWeekReport(w WeekAttendance, q Quota, dir *Directory) WeekReport {
	r := WeekReport{Slots: []SlotTotals{}}
	for _, d := range Days {
		for _, p := range Periods {
			if !HasSlot(d, p) {
				continue
			}
			t := SlotTotal(w, q, dir, d, p)
			r.Slots = append(r.Slots, SlotTotals{Day: d, Period: p, Totals: t})
			r.Week.add(t)
		}
	}
	return r
}

// DayTotals is one day of the daily report
type DayTotals struct {
	Day       Day    `json:"day"`
	Breakfast Totals `json:"breakfast"`
	Afternoon Totals `json:"afternoon"`
	Total     int    `json:"total"`
}

// DailyReport aggregates the dashboard marks per day
type DailyReport struct {
	Days []DayTotals `json:"days"`
	Week Totals      `json:"week"`
}

// BuildDailyReport counts the marks of registered participants who are not on
// vacation today. Days without an afternoon slot always total zero there.
func BuildDailyReport(ps []Participant, a DailyAttendance, today time.Time) DailyReport {
	r := DailyReport{Days: make([]DayTotals, 0, len(Days))}
	for _, d := range Days {
		dt := DayTotals{Day: d}
		for _, p := range ps {
			if p.OnVacation(today) {
				continue
			}
			m := a.Mark(d, p.ID)
			if m.Breakfast {
				dt.Breakfast.count(p.Floor, true)
			}
			if m.Afternoon && HasSlot(d, Afternoon) {
				dt.Afternoon.count(p.Floor, true)
			}
		}
		dt.Total = dt.Breakfast.Total + dt.Afternoon.Total
		r.Week.add(dt.Breakfast)
		r.Week.add(dt.Afternoon)
		r.Days = append(r.Days, dt)
	}
	return r
}
