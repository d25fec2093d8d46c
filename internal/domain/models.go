package domain

import "errors"

// ErrNotFound is returned by repositories when no employee matches an ID.
var ErrNotFound = errors.New("employee not found")

// ContactPreference selects which contact detail is mandatory for an employee.
type ContactPreference string

const (
	ContactEmail ContactPreference = "email"
	ContactPhone ContactPreference = "phone"
)

// DefaultContactPreference is the preference a blank form starts with.
const DefaultContactPreference = ContactEmail

// Valid reports whether p is one of the known preferences.
func (p ContactPreference) Valid() bool {
	return p == ContactEmail || p == ContactPhone
}

// Skill is one entry of an employee's skill list. Entries have no identity;
// their position in Employee.Skills is the display order.
type Skill struct {
	SkillName string `json:"skillName" yaml:"skillName"`
	// ExperienceInYears is kept as entered, e.g. "3".
	ExperienceInYears string `json:"experienceInYears" yaml:"experienceInYears"`
	// Proficiency is one of Beginner, Intermediate, Advanced.
	Proficiency string `json:"proficiency" yaml:"proficiency"`
}

// Proficiencies lists the proficiency values offered by the screens.
var Proficiencies = []string{"Beginner", "Intermediate", "Advanced"}

type Employee struct {
	// ID is zero until the record has been persisted.
	ID                int64             `json:"id,omitempty" yaml:"id,omitempty"`
	FullName          string            `json:"fullName" yaml:"fullName"`
	ContactPreference ContactPreference `json:"contactPreference" yaml:"contactPreference"`
	Email             string            `json:"email" yaml:"email"`
	// Phone is nil when the employee has no phone number on file.
	Phone  *string `json:"phone" yaml:"phone"`
	Skills []Skill `json:"skills" yaml:"skills"`
}

// Persisted reports whether the record has been assigned an identity.
func (e *Employee) Persisted() bool {
	return e != nil && e.ID != 0
}

// PhoneValue returns the phone number or "" when absent.
func (e *Employee) PhoneValue() string {
	if e == nil || e.Phone == nil {
		return ""
	}
	return *e.Phone
}

// NewEmployee returns the blank record a create screen starts from.
func NewEmployee() *Employee {
	return &Employee{
		ContactPreference: DefaultContactPreference,
		Skills:            []Skill{},
	}
}
