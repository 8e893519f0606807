package web

import (
	"net/http"

	"github.com/charmbracelet/log"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
	"git.sr.ht/~jakintosh/tasklist/internal/logging"
)

type ServerOptions struct {
	Logger *log.Logger
}

type Server struct {
	store        domain.Store
	router       *http.ServeMux
	handler      http.Handler
	presentation *Presentation
	logger       *log.Logger
}

func NewServer(store domain.Store, opts ServerOptions) (*Server, error) {
	pres, err := NewPresentation()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		store:        store,
		router:       http.NewServeMux(),
		presentation: pres,
		logger:       logger,
	}
	s.routes()
	s.handler = logRequests(logger, s.router)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Page Routes
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /healthz", s.handleHealth)

	// Input state
	s.router.HandleFunc("POST /draft", s.handleSetDraft)
	s.router.HandleFunc("POST /category", s.handleSelectCategory)

	// Task mutations; the POST forms are the no-JavaScript fallbacks
	s.router.HandleFunc("POST /tasks", s.handleCreateTask)
	s.router.HandleFunc("PATCH /tasks/{id}/toggle", s.handleToggleTask)
	s.router.HandleFunc("POST /tasks/{id}/toggle", s.handleToggleTask)
	s.router.HandleFunc("DELETE /tasks/{id}", s.handleDeleteTask)
	s.router.HandleFunc("POST /tasks/{id}/delete", s.handleDeleteTask)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.State()
	if err != nil {
		s.fail(w, "load state", err)
		return
	}

	if err := s.presentation.RenderIndex(w, NewPageView(st)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	ctx := parseRequestContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.store.Dispatch(domain.SetDraft{Text: r.FormValue("text")}); err != nil {
		s.fail(w, "set draft", err)
		return
	}

	if !ctx.wantsFragment() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	ctx := parseRequestContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The selector only offers known categories; anything else is ignored
	// by the reducer.
	raw := r.FormValue("category")
	if _, err := domain.ParseCategory(raw); err != nil {
		s.logger.Debug("ignoring category", "category", raw, "err", err)
	}
	if _, err := s.store.Dispatch(domain.SelectCategory{Category: domain.Category(raw)}); err != nil {
		s.fail(w, "select category", err)
		return
	}

	if !ctx.wantsFragment() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := parseRequestContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Sync the input state the form carries, then add from it.
	actions := make([]domain.Action, 0, 3)
	if _, ok := r.Form["text"]; ok {
		actions = append(actions, domain.SetDraft{Text: r.FormValue("text")})
	}
	if _, ok := r.Form["category"]; ok {
		actions = append(actions, domain.SelectCategory{Category: domain.Category(r.FormValue("category"))})
	}
	actions = append(actions, domain.Submit{})

	var events []domain.Event
	var last domain.Transition
	for _, a := range actions {
		tr, err := s.store.Dispatch(a)
		if err != nil {
			s.fail(w, "add task", err)
			return
		}
		events = append(events, tr.Events...)
		last = tr
	}

	if last.Has(domain.TaskAdded) {
		s.logger.Debug("task added", "tasks", len(last.Next.Tasks))
	}

	if !ctx.wantsFragment() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := setTriggerHeader(w, events); err != nil {
		s.fail(w, "encode events", err)
		return
	}
	if err := s.presentation.RenderList(w, NewListView(last.Next, events, false)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.presentation.RenderForm(w, NewFormView(last.Next, true)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	s.mutateTask(w, r, domain.Toggle{ID: r.PathValue("id")})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.mutateTask(w, r, domain.Remove{ID: r.PathValue("id")})
}

// mutateTask dispatches a per-task action and answers with the whole list.
// Unknown ids are not an error: the list comes back unchanged.
func (s *Server) mutateTask(w http.ResponseWriter, r *http.Request, a domain.Action) {
	ctx := parseRequestContext(r)

	tr, err := s.store.Dispatch(a)
	if err != nil {
		s.fail(w, "update task", err)
		return
	}

	if !ctx.wantsFragment() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := setTriggerHeader(w, tr.Events); err != nil {
		s.fail(w, "encode events", err)
		return
	}
	if err := s.presentation.RenderList(w, NewListView(tr.Next, tr.Events, false)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "err", err)
	http.Error(w, "Failed to "+op, http.StatusInternalServerError)
}
