package app

import (
	"net/http"
	"strconv"

	"github.com/klabast/wb-services/controle-cafe/internal/cafe"
)

type floorInfo struct {
	Code  cafe.Floor `json:"code"`
	Label string     `json:"label"`
}

// GetConfig returns the static configuration the client needs to render
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	floors := make([]floorInfo, 0, len(cafe.Floors))
	for _, f := range cafe.Floors {
		floors = append(floors, floorInfo{Code: f, Label: f.Label()})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"days":        cafe.Days,
		"periods":     cafe.Periods,
		"floors":      floors,
		"quotaDay":    cafe.QuotaDay,
		"flags":       cafe.Flags,
		"mode":        s.Mode(),
		"editMode":    s.editMode,
		"authEnabled": s.auth.Enabled(),
	})
}

// GetSchedule returns the static week with default snacks
func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, cafe.Week())
}

// SearchPeople backs the person selector.
// Query params: floor (optional), q (optional substring)
func (s *Server) SearchPeople(w http.ResponseWriter, r *http.Request) {
	f, ok := queryFloor(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	dir := s.state.Directory()

	floors := cafe.Floors
	if f != "" {
		floors = []cafe.Floor{f}
	}
	out := make(map[cafe.Floor][]string, len(floors))
	for _, fl := range floors {
		out[fl] = dir.Search(fl, q)
	}
	s.writeJSON(w, http.StatusOK, out)
}

// ── Participants ──

type participantRequest struct {
	Name          string `json:"name"`
	Floor         string `json:"floor"`
	VacationStart string `json:"vacationStart"`
	VacationEnd   string `json:"vacationEnd"`
}

// floor returns the parsed floor or "" so that validation turns it into a no-op
func (p participantRequest) floor() cafe.Floor {
	f, err := cafe.ParseFloor(p.Floor)
	if err != nil {
		return ""
	}
	return f
}

// ListParticipants returns the roster sorted by name
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	f, ok := queryFloor(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.state.Participants(f))
}

// AddParticipant registers a new participant
func (s *Server) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, ok := s.state.AddParticipant(r.Context(), req.Name, req.floor())
	if !ok {
		s.writeStatus(w, false)
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

// EditParticipant updates name, floor and vacation range
func (s *Server) EditParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, ok := s.state.EditParticipant(r.Context(), r.PathValue("id"), cafe.ParticipantUpdate{
		Name:          req.Name,
		Floor:         req.floor(),
		VacationStart: req.VacationStart,
		VacationEnd:   req.VacationEnd,
	})
	if !ok {
		s.writeStatus(w, false)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// DeleteParticipant removes a participant
func (s *Server) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	s.writeStatus(w, s.state.DeleteParticipant(r.Context(), r.PathValue("id")))
}

// ── Week grid ──

// GetWeek returns the slot key → people map
func (s *Server) GetWeek(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Week())
}

// SetPeople replaces the people of one slot
func (s *Server) SetPeople(w http.ResponseWriter, r *http.Request) {
	d, p, ok := pathSlot(w, r)
	if !ok {
		return
	}
	var req struct {
		People []string `json:"people"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.state.SetPeople(r.Context(), d, p, req.People); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.state.Week().People(d, p))
}

// RemovePerson removes one name from a slot
func (s *Server) RemovePerson(w http.ResponseWriter, r *http.Request) {
	d, p, ok := pathSlot(w, r)
	if !ok {
		return
	}

	if err := s.state.RemovePerson(r.Context(), d, p, r.PathValue("name")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.state.Week().People(d, p))
}

// ── Saturday quota ──

type quotaResponse struct {
	cafe.Quota
	Total int `json:"total"`
}

// GetSaturday returns the Saturday headcount per floor
func (s *Server) GetSaturday(w http.ResponseWriter, r *http.Request) {
	q := s.state.Quota()
	s.writeJSON(w, http.StatusOK, quotaResponse{Quota: q, Total: q.Total()})
}

// SetSaturday stores the Saturday headcount. Values that are not numbers become 0.
func (s *Server) SetSaturday(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if !decodeJSON(w, r, &req) {
		return
	}

	q := s.state.SetQuota(r.Context(), cafe.Quota{
		AndarCima:  cafe.ParseCount(req["andarCima"]),
		AndarBaixo: cafe.ParseCount(req["andarBaixo"]),
	})
	s.writeJSON(w, http.StatusOK, quotaResponse{Quota: q, Total: q.Total()})
}

// ── Daily marks ──

// GetDaily returns the dashboard rows of one day.
// Query param: floor (optional)
func (s *Server) GetDaily(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDay(w, r)
	if !ok {
		return
	}
	f, ok := queryFloor(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"day":          d,
		"hasAfternoon": cafe.HasSlot(d, cafe.Afternoon),
		"rows":         s.state.Rows(d, f),
	})
}

// ToggleDaily flips the breakfast or afternoon mark of a participant
func (s *Server) ToggleDaily(w http.ResponseWriter, r *http.Request) {
	d, p, ok := pathSlot(w, r)
	if !ok {
		return
	}

	m, err := s.state.ToggleMark(r.Context(), d, p, r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

// SetObservation stores the observation text of a participant's day
func (s *Server) SetObservation(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDay(w, r)
	if !ok {
		return
	}
	var req struct {
		Observation string `json:"observation"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := s.state.SetObservation(r.Context(), d, r.PathValue("id"), req.Observation)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

// ── Menus ──

// GetMenus returns the menus of every day
func (s *Server) GetMenus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Menus())
}

// GetDayMenu returns the menu of one day
func (s *Server) GetDayMenu(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDay(w, r)
	if !ok {
		return
	}
	menus := s.state.Menus()
	s.writeJSON(w, http.StatusOK, cafe.DayMenu{
		Breakfast: menus.Items(d, cafe.Morning),
		Afternoon: menus.Items(d, cafe.Afternoon),
	})
}

// AddMenuItem appends an item to a slot menu
func (s *Server) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	d, p, ok := pathSlot(w, r)
	if !ok {
		return
	}
	var req struct {
		Item string `json:"item"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	applied, err := s.state.AddMenuItem(r.Context(), d, p, req.Item)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeStatus(w, applied)
}

// RemoveMenuItem deletes a menu item by position
func (s *Server) RemoveMenuItem(w http.ResponseWriter, r *http.Request) {
	d, p, ok := pathSlot(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, ErrInvalidIndex, http.StatusBadRequest)
		return
	}

	applied, err := s.state.RemoveMenuItem(r.Context(), d, p, index)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeStatus(w, applied)
}

// ── UI flags ──

// GetFlags returns every UI flag
func (s *Server) GetFlags(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Flags())
}

// SetFlag stores one UI flag
func (s *Server) SetFlag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value bool `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.state.SetFlag(r.Context(), r.PathValue("name"), req.Value); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeStatus(w, true)
}

// ── Reports ──

// GetWeekReport returns the week-grid totals
func (s *Server) GetWeekReport(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.WeekReport())
}

// GetDailyReport returns the dashboard totals
func (s *Server) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.DailyReport())
}
