package cafe

import (
	"fmt"
	"strings"
)

// Floor groups participants into upper and lower floor
type Floor string

const (
	Upper Floor = "cima"
	Lower Floor = "baixo"
)

// Floors lists both floors, upper first
var Floors = []Floor{Upper, Lower}

// Label returns the display name, e.g. "Andar de Cima"
func (f Floor) Label() string {
	switch f {
	case Upper:
		return "Andar de Cima"
	case Lower:
		return "Andar de Baixo"
	default:
		return string(f)
	}
}

// Valid reports whether f is one of the two floors
func (f Floor) Valid() bool {
	return f == Upper || f == Lower
}

// ParseFloor accepts codes ("cima") and labels ("Andar de Cima")
func ParseFloor(s string) (Floor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cima", "andar de cima", "upper":
		return Upper, nil
	case "baixo", "andar de baixo", "lower":
		return Lower, nil
	}
	return "", fmt.Errorf("unknown floor %q", s)
}

// StaticRoster is the fixed people-by-floor reference list
var StaticRoster = map[Floor][]string{
	Upper: {
		"Alessandro",
		"Ana Claudia",
		"Ana Marcia",
		"Carlos Roberto",
		"Daniel Freire",
		"Felipe",
		"Gustavo Anchieta",
		"Henrique",
		"Jefferson",
		"Vander Carlos",
		"Evandro Assis",
		"Giovani",
		"Samuel",
		"Selminha",
		"Vantuir Oliveira",
		"Vitor",
		"Cris Cruz",
		"Cristiana Oliveira",
		"Adrian",
	},
	Lower: {
		"André Aurelio",
		"Breno",
		"Carlos Henrique",
		"Celso",
		"Eduardo",
		"Fernando Silva",
		"Gustavo Aparecido",
		"João Henrique",
		"Kauã",
		"Leonardo Negrini",
		"Mateus Pereira",
		"Pedro Henrique(Cândido)",
		"Pedro Paulo de Assis",
		"Pedro Paulo - Avançado",
		"Thalles Terra",
		"Vitor Hugo",
		"William Siva",
		"Valesca Eliana",
		"Elza",
	},
}

// Directory maps a person's name to their floor.
// The first floor recorded for a name wins.
type Directory struct {
	floorOf map[string]Floor
	people  map[Floor][]string
}

// NewDirectory indexes the static roster followed by any registered participants
func NewDirectory(participants []Participant) *Directory {
	d := &Directory{
		floorOf: make(map[string]Floor),
		people:  make(map[Floor][]string),
	}
	for _, f := range Floors {
		for _, name := range StaticRoster[f] {
			d.add(name, f)
		}
	}
	for _, p := range participants {
		d.add(p.Name, p.Floor)
	}
	return d
}

func (d *Directory) add(name string, f Floor) {
	if !f.Valid() {
		return
	}
	if _, ok := d.floorOf[name]; ok {
		return
	}
	d.floorOf[name] = f
	d.people[f] = append(d.people[f], name)
}

// FloorOf returns the floor for name; ok is false for unknown people
func (d *Directory) FloorOf(name string) (Floor, bool) {
	f, ok := d.floorOf[name]
	return f, ok
}

// People returns the people on a floor in roster order
func (d *Directory) People(f Floor) []string {
	out := make([]string, len(d.people[f]))
	copy(out, d.people[f])
	return out
}

// Search returns people on floor f whose name contains query, case-insensitively.
// An empty query matches everyone.
func (d *Directory) Search(f Floor, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []string{}
	for _, name := range d.people[f] {
		if q == "" || strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	return out
}
