package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/csg33k/employee-registry/internal/adapters/employeeapi"
	"github.com/csg33k/employee-registry/internal/adapters/pdf"
	"github.com/csg33k/employee-registry/internal/employeeform"
	"github.com/csg33k/employee-registry/internal/ports"
	"github.com/csg33k/employee-registry/internal/templates"
)

type Handler struct {
	svc      ports.EmployeeService
	sessions *employeeform.Store
	log      *slog.Logger
}

func New(svc ports.EmployeeService, sessions *employeeform.Store, log *slog.Logger) *Handler {
	return &Handler{svc: svc, sessions: sessions, log: log}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /employees", h.listEmployees)
	mux.HandleFunc("GET /employees/create", h.createForm)
	mux.HandleFunc("GET /employees/edit/{id}", h.editForm)
	mux.HandleFunc("GET /employees/report.pdf", h.generatePDF)
	mux.HandleFunc("DELETE /employees/{id}", h.deleteEmployee)
	mux.HandleFunc("POST /forms/{sid}/input", h.input)
	mux.HandleFunc("POST /forms/{sid}/touch", h.touch)
	mux.HandleFunc("POST /forms/{sid}/skills", h.addSkill)
	mux.HandleFunc("DELETE /forms/{sid}/skills/{index}", h.removeSkill)
	mux.HandleFunc("POST /forms/{sid}/submit", h.submit)
	mux.HandleFunc("DELETE /forms/{sid}", h.cancel)
	mux.HandleFunc("/", h.notFound)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/employees", http.StatusFound)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	renderStatus(w, r, http.StatusNotFound, templates.NotFound("The page you are looking for does not exist."))
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		render(w, r, templates.EmployeeList(nil, err.Error()))
		return
	}
	render(w, r, templates.EmployeeList(list, ""))
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Open(nil)
	render(w, r, templates.EmployeeFormPage(s.View()))
}

// editForm fetches the record and opens a session populated from it.
func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.notFound(w, r)
		return
	}
	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if employeeapi.NotFound(err) {
			renderStatus(w, r, http.StatusNotFound, templates.NotFound(fmt.Sprintf("Employee %d does not exist.", id)))
			return
		}
		renderStatus(w, r, http.StatusServiceUnavailable, templates.EmployeeList(nil, err.Error()))
		return
	}
	s := h.sessions.Open(e)
	render(w, r, templates.EmployeeFormPage(s.View()))
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	notice := ""
	if err := h.svc.Delete(r.Context(), id); err != nil {
		notice = err.Error()
	}
	list, err := h.svc.List(r.Context())
	if err != nil {
		notice = err.Error()
	}
	render(w, r, templates.EmployeeRows(list, notice))
}

// ── Form session routes ─────────────────────────────────────────────────────

// session resolves {sid}. An expired or unknown session sends the browser
// back to the list.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*employeeform.Session, bool) {
	s, ok := h.sessions.Get(r.PathValue("sid"))
	if !ok {
		w.Header().Set("HX-Redirect", "/employees")
		w.WriteHeader(http.StatusGone)
		return nil, false
	}
	return s, true
}

// input applies one field change. The request carries the field path in
// "path" and the new value under the field's own name.
func (h *Handler) input(w http.ResponseWriter, r *http.Request) {
	h.field(w, r, func(s *employeeform.Session, path string) error {
		return s.Input(path, r.PostFormValue(path))
	})
}

// touch runs when focus leaves a field, changed or not.
func (h *Handler) touch(w http.ResponseWriter, r *http.Request) {
	h.field(w, r, func(s *employeeform.Session, path string) error {
		return s.Touch(path)
	})
}

func (h *Handler) field(w http.ResponseWriter, r *http.Request, apply func(*employeeform.Session, string) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if err := apply(s, r.PostFormValue("path")); err != nil {
		if errors.Is(err, employeeform.ErrUnknownField) {
			http.Error(w, err.Error(), 400)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.EmployeeForm(s.View()))
}

func (h *Handler) addSkill(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.AddSkill()
	render(w, r, templates.EmployeeForm(s.View()))
}

func (h *Handler) removeSkill(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid index", 400)
		return
	}
	if err := s.RemoveSkill(i); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	render(w, r, templates.EmployeeForm(s.View()))
}

// submit saves the record through the record service. Invalid forms come
// back with every message shown; service failures keep the session open so
// the user can retry.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	e, err := s.Submit()
	var verr *employeeform.ValidationError
	if errors.As(err, &verr) {
		renderStatus(w, r, http.StatusUnprocessableEntity, templates.EmployeeForm(s.View()))
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if s.Editing() {
		err = h.svc.Update(r.Context(), e)
	} else {
		err = h.svc.Create(r.Context(), e)
	}
	if err != nil {
		v := s.View()
		v.Notice = err.Error()
		renderStatus(w, r, http.StatusServiceUnavailable, templates.EmployeeForm(v))
		return
	}
	h.sessions.Close(s.ID)
	h.log.Info("employee saved", "fullName", e.FullName, "editing", s.Editing())
	w.Header().Set("HX-Redirect", "/employees")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.sessions.Close(r.PathValue("sid"))
	w.Header().Set("HX-Redirect", "/employees")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) generatePDF(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	var buf bytes.Buffer
	if err := pdf.GenerateRoster(list, time.Now(), &buf); err != nil {
		h.log.Error("roster pdf", "err", err)
		http.Error(w, err.Error(), 500)
		return
	}
	filename := fmt.Sprintf("employees_%s.pdf", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	renderStatus(w, r, http.StatusOK, c)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}
