// Package api serves the employees collection resource as JSON:
//
//	GET    /employees        list
//	GET    /employees/{id}   fetch one
//	POST   /employees        create, id assigned by the server
//	PUT    /employees/{id}   replace
//	DELETE /employees/{id}   remove
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/csg33k/employee-registry/internal/domain"
	"github.com/csg33k/employee-registry/internal/employeeform"
	"github.com/csg33k/employee-registry/internal/ports"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	repo        ports.EmployeeRepository
	emailDomain string
	log         *slog.Logger
	policy      *bluemonday.Policy
}

func New(repo ports.EmployeeRepository, emailDomain string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		repo:        repo,
		emailDomain: emailDomain,
		log:         log,
		policy:      bluemonday.StrictPolicy(),
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /employees", h.list)
	mux.HandleFunc("POST /employees", h.create)
	mux.HandleFunc("GET /employees/{id}", h.get)
	mux.HandleFunc("PUT /employees/{id}", h.update)
	mux.HandleFunc("DELETE /employees/{id}", h.delete)
	return mux
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repo.ListEmployees(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	e, err := h.repo.GetEmployee(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decode(w, r)
	if !ok {
		return
	}
	e.ID = 0
	if err := h.repo.CreateEmployee(r.Context(), e); err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("employee created", "id", e.ID)
	// Relative to the collection URL, whatever prefix it is mounted under.
	w.Header().Set("Location", fmt.Sprintf("employees/%d", e.ID))
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	e, ok := h.decode(w, r)
	if !ok {
		return
	}
	if e.ID != 0 && e.ID != id {
		http.Error(w, "id in body does not match path", http.StatusBadRequest)
		return
	}
	e.ID = id
	if err := h.repo.UpdateEmployee(r.Context(), e); err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("employee updated", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.repo.DeleteEmployee(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("employee deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// validationResponse is the 422 body: field path → message.
type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

// decode reads, sanitizes and validates a record. It writes the error
// response itself and reports false when the request cannot proceed.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*domain.Employee, bool) {
	var e domain.Employee
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		http.Error(w, "invalid employee: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	h.sanitize(&e)
	if e.ContactPreference == "" {
		e.ContactPreference = domain.DefaultContactPreference
	}
	if errs := employeeform.ValidateRecord(&e, h.emailDomain); errs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: errs})
		return nil, false
	}
	if e.Skills == nil {
		e.Skills = []domain.Skill{}
	}
	return &e, true
}

// sanitize strips markup from free-text fields.
func (h *Handler) sanitize(e *domain.Employee) {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(h.policy.Sanitize(s)))
	}
	e.FullName = clean(e.FullName)
	e.Email = clean(e.Email)
	if e.Phone != nil {
		p := clean(*e.Phone)
		e.Phone = &p
		if p == "" {
			e.Phone = nil
		}
	}
	for i := range e.Skills {
		e.Skills[i].SkillName = clean(e.Skills[i].SkillName)
		e.Skills[i].ExperienceInYears = clean(e.Skills[i].ExperienceInYears)
		e.Skills[i].Proficiency = clean(e.Skills[i].Proficiency)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.log.Error("employees resource", "method", r.Method, "path", r.URL.Path, "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}
