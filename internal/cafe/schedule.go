// Package cafe holds the coffee service model: the weekly schedule, the
// floor roster, attendance records, Saturday quotas, menus and reports.
package cafe

import (
	"fmt"
	"strings"
)

// Day is a service day of the week
type Day string

const (
	Monday    Day = "Segunda"
	Tuesday   Day = "Terça"
	Wednesday Day = "Quarta"
	Thursday  Day = "Quinta"
	Friday    Day = "Sexta"
	Saturday  Day = "Sábado"
)

// Days lists the service days in week order
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Period is a time slot within a day
type Period string

const (
	Morning   Period = "Manhã"
	Afternoon Period = "Tarde"
)

// Periods lists both periods in order
var Periods = []Period{Morning, Afternoon}

// QuotaDay is served by headcount instead of named attendance
const QuotaDay = Saturday

// LongName returns the dashboard form, e.g. "Segunda-feira".
// Saturday has no "-feira" suffix.
func (d Day) LongName() string {
	if d == Saturday {
		return string(d)
	}
	return string(d) + "-feira"
}

var dayAliases = map[string]Day{
	"segunda": Monday,
	"terça":   Tuesday,
	"terca":   Tuesday,
	"quarta":  Wednesday,
	"quinta":  Thursday,
	"sexta":   Friday,
	"sábado":  Saturday,
	"sabado":  Saturday,
}

// ParseDay accepts short ("Terça"), long ("Terça-feira") and unaccented forms
func ParseDay(s string) (Day, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.TrimSuffix(k, "-feira")
	if d, ok := dayAliases[k]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: day %q", ErrUnknownSlot, s)
}

var periodAliases = map[string]Period{
	"manhã":     Morning,
	"manha":     Morning,
	"morning":   Morning,
	"breakfast": Morning,
	"tarde":     Afternoon,
	"afternoon": Afternoon,
}

// ParsePeriod accepts the Portuguese names and their English equivalents
func ParsePeriod(s string) (Period, error) {
	if p, ok := periodAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: period %q", ErrUnknownSlot, s)
}

// HasSlot reports whether the day is served in the given period
func HasSlot(d Day, p Period) bool {
	slots, ok := weekSlots[d]
	if !ok {
		return false
	}
	_, ok = slots[p]
	return ok
}

// SlotKey is the attendance map key for a day and period, e.g. "Segunda-Manhã"
func SlotKey(d Day, p Period) string {
	return string(d) + "-" + string(p)
}

// weekSlots holds the default snack served in each slot
var weekSlots = map[Day]map[Period]string{
	Monday:    {Morning: "Pão de queijo G", Afternoon: "Forrozinho de coco"},
	Tuesday:   {Morning: "Pão de queijo G", Afternoon: "Pão de queijo médio c/ presunto"},
	Wednesday: {Morning: "Pão de queijo G", Afternoon: "Forrozinho de coco"},
	Thursday:  {Morning: "Pão de queijo G", Afternoon: "Salgado"},
	Friday:    {Morning: "Pão de queijo G", Afternoon: "Pão de queijo médio c/ presunto"},
	Saturday:  {Morning: "Por escala"},
}

// Slot is one served period of a day
type Slot struct {
	Period      Period `json:"period"`
	Key         string `json:"key"`
	Description string `json:"description"`
}

// ScheduleDay is one day of the static week
type ScheduleDay struct {
	Day      Day    `json:"day"`
	LongName string `json:"longName"`
	ByQuota  bool   `json:"byQuota"`
	Slots    []Slot `json:"slots"`
}

// Week returns the static weekly schedule in day order
func Week() []ScheduleDay {
	week := make([]ScheduleDay, 0, len(Days))
	for _, d := range Days {
		sd := ScheduleDay{Day: d, LongName: d.LongName(), ByQuota: d == QuotaDay}
		for _, p := range Periods {
			if desc, ok := weekSlots[d][p]; ok {
				sd.Slots = append(sd.Slots, Slot{Period: p, Key: SlotKey(d, p), Description: desc})
			}
		}
		week = append(week, sd)
	}
	return week
}
