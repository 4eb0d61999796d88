package cafe

import (
	"fmt"
	"strings"
)

// DayMenu lists the items offered in each period of a day
type DayMenu struct {
	Breakfast []string `json:"breakfast"`
	Afternoon []string `json:"afternoon"`
}

// Menus holds the menu of every service day
type Menus map[Day]DayMenu

// DefaultMenus returns every day with two empty lists
func DefaultMenus() Menus {
	m := make(Menus, len(Days))
	for _, d := range Days {
		m[d] = DayMenu{Breakfast: []string{}, Afternoon: []string{}}
	}
	return m
}

// Items returns a copy of the items for a slot
func (m Menus) Items(d Day, p Period) []string {
	dm := m[d]
	var src []string
	if p == Morning {
		src = dm.Breakfast
	} else {
		src = dm.Afternoon
	}
	return append([]string{}, src...)
}

// AddItem appends a trimmed item; blank input is ignored and reports false
func (m Menus) AddItem(d Day, p Period, item string) (bool, error) {
	if !HasSlot(d, p) {
		return false, fmt.Errorf("%w: %s", ErrUnknownSlot, SlotKey(d, p))
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return false, nil
	}
	m.set(d, p, append(m.Items(d, p), item))
	return true, nil
}

// RemoveItem deletes the item at index; an out-of-range index reports false
func (m Menus) RemoveItem(d Day, p Period, index int) (bool, error) {
	if !HasSlot(d, p) {
		return false, fmt.Errorf("%w: %s", ErrUnknownSlot, SlotKey(d, p))
	}
	items := m.Items(d, p)
	if index < 0 || index >= len(items) {
		return false, nil
	}
	m.set(d, p, append(items[:index], items[index+1:]...))
	return true, nil
}

// SetItems replaces the items for a slot, dropping blanks
func (m Menus) SetItems(d Day, p Period, items []string) error {
	if !HasSlot(d, p) {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, SlotKey(d, p))
	}
	clean := []string{}
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	m.set(d, p, clean)
	return nil
}

func (m Menus) set(d Day, p Period, items []string) {
	dm := m[d]
	if dm.Breakfast == nil {
		dm.Breakfast = []string{}
	}
	if dm.Afternoon == nil {
		dm.Afternoon = []string{}
	}
	if p == Morning {
		dm.Breakfast = items
	} else {
		dm.Afternoon = items
	}
	m[d] = dm
}

// Clone returns a deep copy
func (m Menus) Clone() Menus {
	out := make(Menus, len(m))
	for d, dm := range m {
		out[d] = DayMenu{
			Breakfast: append([]string{}, dm.Breakfast...),
			Afternoon: append([]string{}, dm.Afternoon...),
		}
	}
	return out
}
