package app

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/controle-cafe/internal/cafe"
	"github.com/klabast/wb-services/controle-cafe/internal/config"
)

// iCalendar settings
const (
	ICSProductID = "-//Controle de Café//PT-BR"
	ICSCalName   = "Controle de Café"
	ICSRefresh   = "PT1H"
	ICSDomain    = "controle-cafe"
)

// byDay maps each service day to its RRULE weekday code
var byDay = map[cafe.Day]string{
	cafe.Monday:    "MO",
	cafe.Tuesday:   "TU",
	cafe.Wednesday: "WE",
	cafe.Thursday:  "TH",
	cafe.Friday:    "FR",
	cafe.Saturday:  "SA",
}

var periodTitles = map[cafe.Period]string{
	cafe.Morning:   "Café da manhã",
	cafe.Afternoon: "Café da tarde",
}

// weekStart returns midnight of the Monday of the week containing t
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// slotStart places a slot of the current week on the clock
func slotStart(monday time.Time, dayIndex int, clock string) (time.Time, error) {
	hm, err := time.Parse(config.ClockFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot time %q: %w", clock, err)
	}
	d := monday.AddDate(0, 0, dayIndex)
	return time.Date(d.Year(), d.Month(), d.Day(), hm.Hour(), hm.Minute(), 0, 0, monday.Location()), nil
}

// slotDescription lists the headcount and the menu of a slot
func slotDescription(t cafe.Totals, byQuota bool, items []string) string {
	var b strings.Builder
	if byQuota {
		b.WriteString("Por escala\n")
	}
	fmt.Fprintf(&b, "Total: %d\n", t.Total)
	fmt.Fprintf(&b, "%s: %d\n", cafe.Upper.Label(), t.Upper)
	fmt.Fprintf(&b, "%s: %d", cafe.Lower.Label(), t.Lower)
	if len(items) > 0 {
		fmt.Fprintf(&b, "\nCardápio: %s", strings.Join(items, ", "))
	}
	return b.String()
}

// BuildCalendar renders the weekly schedule as recurring events, one per slot.
// Descriptions carry the current headcount and menu, so clients should keep
// the feed subscribed rather than imported.
func BuildCalendar(report cafe.WeekReport, menus cafe.Menus, cfg config.CalendarConfig, now time.Time) (*ics.Calendar, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid calendar timezone: %w", err)
	}
	monday := weekStart(now.In(loc))
	duration := time.Duration(cfg.Duration) * time.Minute

	totals := make(map[string]cafe.Totals, len(report.Slots))
	for _, st := range report.Slots {
		totals[cafe.SlotKey(st.Day, st.Period)] = st.Totals
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ICSProductID)
	cal.SetXWRCalName(ICSCalName)
	cal.SetXWRTimezone(cfg.Timezone)
	cal.SetXPublishedTTL(ICSRefresh)
	cal.SetRefreshInterval(ICSRefresh)

	for i, day := range cafe.Week() {
		for _, slot := range day.Slots {
			clock := cfg.Breakfast
			if slot.Period == cafe.Afternoon {
				clock = cfg.Afternoon
			}
			start, err := slotStart(monday, i, clock)
			if err != nil {
				return nil, err
			}

			// UID must be stable so subscribed clients update instead of duplicating
			event := cal.AddEvent(fmt.Sprintf("%s@%s", slot.Key, ICSDomain))
			event.SetDtStampTime(now.UTC())
			event.SetStartAt(start)
			event.SetEndAt(start.Add(duration))
			event.SetSummary(fmt.Sprintf("%s: %s", periodTitles[slot.Period], slot.Description))
			event.SetDescription(slotDescription(totals[slot.Key], day.ByQuota, menus.Items(day.Day, slot.Period)))
			event.SetLocation(ICSCalName)
			event.AddRrule("FREQ=WEEKLY;BYDAY=" + byDay[day.Day])
		}
	}
	return cal, nil
}

// HandleCalendar serves the weekly schedule as an iCalendar subscription feed.
// No Content-Disposition header: calendar apps need inline content to subscribe.
func (s *Server) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	cal, err := BuildCalendar(s.state.WeekReport(), s.state.Menus(), s.calendar, s.state.Today())
	if err != nil {
		s.log.Error("Error generating calendar", zap.Error(err))
		http.Error(w, ErrFailedToGenerate, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		s.log.Error("Error writing calendar", zap.Error(err))
	}
}
