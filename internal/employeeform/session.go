package employeeform

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csg33k/employee-registry/internal/domain"
	"github.com/csg33k/employee-registry/internal/forms"
)

// ErrUnknownField is returned when a path does not name an editable leaf.
var ErrUnknownField = errors.New("unknown form field")

// ValidationError is returned by Submit when the form still has failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("employee form has %d invalid field(s)", len(e.Fields))
}

// Session is the form state of one create or edit screen visit. All methods
// are safe for concurrent use.
type Session struct {
	ID    string
	Title string

	mu       sync.Mutex
	form     *forms.Node
	base     *domain.Employee
	messages forms.Messages
	errors   map[string]string

	lastUsed time.Time
}

// NewSession builds a fresh form. A nil base opens a create screen; a
// persisted base opens an edit screen populated from it.
func NewSession(id, emailDomain string, base *domain.Employee) *Session {
	s := &Session{
		ID:       id,
		Title:    "Create Employee",
		form:     Build(emailDomain),
		base:     base,
		messages: Messages(emailDomain),
	}
	if base.Persisted() {
		s.Title = "Edit Employee"
		Load(s.form, base)
	}
	s.revalidate()
	return s
}

// Editing reports whether the session updates an existing record.
func (s *Session) Editing() bool {
	return s.base.Persisted()
}

// Input stores a value typed into the leaf at path and marks it touched,
// as happens when the user changes a field and leaves it.
func (s *Session) Input(path, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.leaf(path)
	if err != nil {
		return err
	}
	n.Input(value)
	n.MarkTouched()
	s.revalidate()
	return nil
}

// Touch marks the leaf at path touched without changing its value.
func (s *Session) Touch(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.leaf(path)
	if err != nil {
		return err
	}
	n.MarkTouched()
	s.revalidate()
	return nil
}

func (s *Session) AddSkill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	AddSkill(s.form)
	s.revalidate()
}

func (s *Session) RemoveSkill(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RemoveSkill(s.form, i); err != nil {
		return err
	}
	s.revalidate()
	return nil
}

// Errors returns the current field messages keyed by dotted path.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.errors)
}

// Submit marks every field touched and revalidates. When the form is valid
// it returns the record to save, otherwise a *ValidationError.
func (s *Session) Submit() (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.MarkAllTouched()
	s.revalidate()
	if !s.form.Valid() {
		return nil, &ValidationError{Fields: maps.Clone(s.errors)}
	}
	return ToEmployee(s.form, s.base), nil
}

// View is a read-only snapshot of a session for rendering.
type View struct {
	SessionID         string
	Title             string
	Editing           bool
	EmployeeID        int64
	FullName          string
	ContactPreference string
	Email             string
	ConfirmEmail      string
	Phone             string
	PhoneRequired     bool
	Skills            []SkillView
	SkillsValid       bool
	Errors            map[string]string
	Proficiencies     []string
	// Notice is a form-level message such as a service failure.
	Notice string
}

type SkillView struct {
	Index             int
	SkillName         string
	ExperienceInYears string
	Proficiency       string
	// Errors is keyed by leaf name (skillName, experienceInYears, proficiency).
	Errors map[string]string
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		SessionID:         s.ID,
		Title:             s.Title,
		Editing:           s.base.Persisted(),
		FullName:          s.form.Child(FieldFullName).Value(),
		ContactPreference: s.form.Child(FieldContactPreference).Value(),
		Email:             s.form.Get(PathEmail).Value(),
		ConfirmEmail:      s.form.Get(PathConfirmEmail).Value(),
		Phone:             s.form.Child(FieldPhone).Value(),
		PhoneRequired:     prefersPhone(s.form.Child(FieldPhone)),
		Errors:            maps.Clone(s.errors),
		Proficiencies:     domain.Proficiencies,
	}
	if s.base != nil {
		v.EmployeeID = s.base.ID
	}
	skills := s.form.Child(FieldSkills)
	v.SkillsValid = skills.Valid()
	for i := 0; i < skills.Len(); i++ {
		g := skills.At(i)
		prefix := FieldSkills + "." + strconv.Itoa(i) + "."
		sv := SkillView{
			Index:             i,
			SkillName:         g.Child(FieldSkillName).Value(),
			ExperienceInYears: g.Child(FieldExperience).Value(),
			Proficiency:       g.Child(FieldProficiency).Value(),
			Errors:            map[string]string{},
		}
		for _, name := range g.Names() {
			if msg, ok := s.errors[prefix+name]; ok {
				sv.Errors[name] = msg
			}
		}
		v.Skills = append(v.Skills, sv)
	}
	return v
}

func (s *Session) leaf(path string) (*forms.Node, error) {
	n := s.form.Get(path)
	if n == nil || n.Kind() != forms.KindLeaf {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	return n, nil
}

func (s *Session) revalidate() {
	s.form.Validate()
	s.errors = forms.Collect(s.form, s.messages)
}

// Store keeps the open sessions of a server process.
type Store struct {
	emailDomain string
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore(emailDomain string) *Store {
	return &Store{
		emailDomain: emailDomain,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// Open starts a session for base (nil for a new record).
func (st *Store) Open(base *domain.Employee) *Session {
	s := NewSession(uuid.NewString(), st.emailDomain, base)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.lastUsed = st.now()
	st.sessions[s.ID] = s
	return s
}

// Get returns the session with id and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if ok {
		s.lastUsed = st.now()
	}
	return s, ok
}

// Close discards a session; unknown ids are ignored.
func (st *Store) Close(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Sweep closes sessions idle for longer than maxIdle and returns how many
// were removed.
func (st *Store) Sweep(maxIdle time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	cutoff := st.now().Add(-maxIdle)
	n := 0
	for id, s := range st.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
