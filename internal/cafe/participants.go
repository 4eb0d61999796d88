package cafe

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DateFormat is the layout of vacation dates
const DateFormat = "2006-01-02"

// Participant is a registered coffee service participant
type Participant struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Floor         Floor  `json:"floor"`
	VacationStart string `json:"vacationStart,omitempty"`
	VacationEnd   string `json:"vacationEnd,omitempty"`
}

// OnVacation reports whether today falls inside the vacation range, both ends inclusive.
// A range with either end missing never matches.
func (p Participant) OnVacation(today time.Time) bool {
	if p.VacationStart == "" || p.VacationEnd == "" {
		return false
	}
	d := today.Format(DateFormat)
	return p.VacationStart <= d && d <= p.VacationEnd
}

// NewParticipant validates the add-form input.
// ok is false when the trimmed name is empty or the floor is not valid.
func NewParticipant(name string, floor Floor) (Participant, bool) {
	name = strings.TrimSpace(name)
	if name == "" || !floor.Valid() {
		return Participant{}, false
	}
	return Participant{ID: uuid.NewString(), Name: name, Floor: floor}, true
}

// ParticipantUpdate is the edit-form input
type ParticipantUpdate struct {
	Name          string `json:"name"`
	Floor         Floor  `json:"floor"`
	VacationStart string `json:"vacationStart"`
	VacationEnd   string `json:"vacationEnd"`
}

// Apply returns p with the update applied; ok is false when name or floor is missing
func (u ParticipantUpdate) Apply(p Participant) (Participant, bool) {
	name := strings.TrimSpace(u.Name)
	if name == "" || !u.Floor.Valid() {
		return p, false
	}
	p.Name = name
	p.Floor = u.Floor
	p.VacationStart = normalizeDate(u.VacationStart)
	p.VacationEnd = normalizeDate(u.VacationEnd)
	return p, true
}

// normalizeDate returns s as YYYY-MM-DD, or "" when it does not parse
func normalizeDate(s string) string {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return t.Format(DateFormat)
}

// SortByName orders participants by name using Brazilian Portuguese collation
func SortByName(ps []Participant) {
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(ps, func(i, j int) bool {
		return c.CompareString(ps[i].Name, ps[j].Name) < 0
	})
}

// FilterByFloor returns the participants on floor f; an empty floor returns all
func FilterByFloor(ps []Participant, f Floor) []Participant {
	out := []Participant{}
	for _, p := range ps {
		if f == "" || p.Floor == f {
			out = append(out, p)
		}
	}
	return out
}

func findParticipant(ps []Participant, id string) int {
	for i := range ps {
		if ps[i].ID == id {
			return i
		}
	}
	return -1
}
