package cafe

import (
	"fmt"
	"strings"
)

// WeekAttendance maps a slot key ("Segunda-Manhã") to the people attending.
// A key is never stored with an empty list.
type WeekAttendance map[string][]string

func checkNamedSlot(d Day, p Period) error {
	if !HasSlot(d, p) {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, SlotKey(d, p))
	}
	if d == QuotaDay {
		return fmt.Errorf("%w: %s", ErrQuotaDay, d)
	}
	return nil
}

// People returns a copy of the list for a slot; nil when nobody is recorded
func (w WeekAttendance) People(d Day, p Period) []string {
	list, ok := w[SlotKey(d, p)]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// SetPeople replaces the whole list for a slot.
// Names are trimmed, blanks and duplicates dropped; an empty result deletes the key.
func (w WeekAttendance) SetPeople(d Day, p Period, people []string) error {
	if err := checkNamedSlot(d, p); err != nil {
		return err
	}

	seen := make(map[string]bool, len(people))
	list := make([]string, 0, len(people))
	for _, name := range people {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		list = append(list, name)
	}

	w.put(SlotKey(d, p), list)
	return nil
}

// RemovePerson drops one name from a slot, deleting the key when the list empties
func (w WeekAttendance) RemovePerson(d Day, p Period, name string) error {
	if err := checkNamedSlot(d, p); err != nil {
		return err
	}

	key := SlotKey(d, p)
	list := make([]string, 0, len(w[key]))
	for _, n := range w[key] {
		if n != name {
			list = append(list, n)
		}
	}

	w.put(key, list)
	return nil
}

func (w WeekAttendance) put(key string, list []string) {
	if len(list) == 0 {
		delete(w, key)
		return
	}
	w[key] = list
}

// Clone returns a deep copy
func (w WeekAttendance) Clone() WeekAttendance {
	out := make(WeekAttendance, len(w))
	for k, v := range w {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// prune drops empty lists, e.g. from hand-edited stored data
func (w WeekAttendance) prune() {
	for k, v := range w {
		if len(v) == 0 {
			delete(w, k)
		}
	}
}
