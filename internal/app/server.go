package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/controle-cafe/internal/cafe"
	"github.com/klabast/wb-services/controle-cafe/internal/config"
)

// Options configures a Server
type Options struct {
	EditMode bool
	Calendar config.CalendarConfig
}

// Server exposes the cafe state over HTTP
type Server struct {
	state    *cafe.State
	auth     *Auth
	log      *zap.Logger
	editMode bool
	calendar config.CalendarConfig
}

// NewServer wires the handlers; auth may be nil when edit mode is unprotected
func NewServer(state *cafe.State, auth *Auth, log *zap.Logger, opts Options) *Server {
	return &Server{
		state:    state,
		auth:     auth,
		log:      log,
		editMode: opts.EditMode,
		calendar: opts.Calendar,
	}
}

// Mode returns "edit" or "serve"
func (s *Server) Mode() string {
	if s.editMode {
		return ModeEdit
	}
	return ModeServe
}

// edit guards a mutating handler: 403 outside edit mode, Basic Auth inside it
func (s *Server) edit(next http.HandlerFunc) http.HandlerFunc {
	protected := s.auth.Require(next)
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.editMode {
			http.Error(w, ErrEditModeDisabled, http.StatusForbidden)
			return
		}
		protected(w, r)
	}
}

// Handler returns the routed, request-logging handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/config", s.GetConfig)
	mux.HandleFunc("GET /api/schedule", s.GetSchedule)
	mux.HandleFunc("GET /api/calendar.ics", s.HandleCalendar)
	mux.HandleFunc("GET /api/people", s.SearchPeople)

	mux.HandleFunc("GET /api/participants", s.ListParticipants)
	mux.HandleFunc("POST /api/participants", s.edit(s.AddParticipant))
	mux.HandleFunc("PUT /api/participants/{id}", s.edit(s.EditParticipant))
	mux.HandleFunc("DELETE /api/participants/{id}", s.edit(s.DeleteParticipant))

	mux.HandleFunc("GET /api/week", s.GetWeek)
	mux.HandleFunc("PUT /api/week/{day}/{period}", s.edit(s.SetPeople))
	mux.HandleFunc("DELETE /api/week/{day}/{period}/people/{name}", s.edit(s.RemovePerson))

	mux.HandleFunc("GET /api/saturday", s.GetSaturday)
	mux.HandleFunc("PUT /api/saturday", s.edit(s.SetSaturday))

	mux.HandleFunc("GET /api/daily/{day}", s.GetDaily)
	mux.HandleFunc("POST /api/daily/{day}/{id}/{period}", s.edit(s.ToggleDaily))
	mux.HandleFunc("PUT /api/daily/{day}/{id}/observation", s.edit(s.SetObservation))

	mux.HandleFunc("GET /api/menus", s.GetMenus)
	mux.HandleFunc("GET /api/menus/{day}", s.GetDayMenu)
	mux.HandleFunc("POST /api/menus/{day}/{period}", s.edit(s.AddMenuItem))
	mux.HandleFunc("DELETE /api/menus/{day}/{period}/{index}", s.edit(s.RemoveMenuItem))

	mux.HandleFunc("GET /api/flags", s.GetFlags)
	mux.HandleFunc("PUT /api/flags/{name}", s.edit(s.SetFlag))

	mux.HandleFunc("GET /api/report/week", s.GetWeekReport)
	mux.HandleFunc("GET /api/report/daily", s.GetDailyReport)
	mux.HandleFunc("GET /api/download", s.HandleDownload)

	return s.logRequests(mux)
}
