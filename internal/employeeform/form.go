// Package employeeform builds the employee edit form on top of package
// forms and owns the per-screen form sessions.
package employeeform

import (
	"fmt"

	"github.com/csg33k/employee-registry/internal/domain"
	"github.com/csg33k/employee-registry/internal/forms"
)

// Field names. Nested fields are addressed with dotted paths, e.g.
// "emailGroup.email" or "skills.2.proficiency".
const (
	FieldFullName          = "fullName"
	FieldContactPreference = "contactPreference"
	FieldEmailGroup        = "emailGroup"
	FieldEmail             = "email"
	FieldConfirmEmail      = "confirmEmail"
	FieldPhone             = "phone"
	FieldSkills            = "skills"
	FieldSkillName         = "skillName"
	FieldExperience        = "experienceInYears"
	FieldProficiency       = "proficiency"
)

const (
	PathEmail        = FieldEmailGroup + "." + FieldEmail
	PathConfirmEmail = FieldEmailGroup + "." + FieldConfirmEmail
)

// DefaultEmailDomain is the company mail domain employees must use.
const DefaultEmailDomain = "sysbiz.com"

const (
	fullNameMin = 2
	fullNameMax = 15
)

// Build returns a blank employee form with a single empty skill entry.
func Build(emailDomain string) *forms.Node {
	return forms.NewGroup().
		Add(FieldFullName, forms.NewLeaf("",
			forms.Required, forms.MinLength(fullNameMin), forms.MaxLength(fullNameMax))).
		Add(FieldContactPreference, forms.NewLeaf(string(domain.DefaultContactPreference))).
		Add(FieldEmailGroup, forms.NewGroup(forms.EmailsMatch(FieldEmail, FieldConfirmEmail)).
			Add(FieldEmail, forms.NewLeaf("", forms.Required, forms.EmailDomain(emailDomain))).
			Add(FieldConfirmEmail, forms.NewLeaf("", forms.Required))).
		Add(FieldPhone, forms.NewLeaf("", forms.RequiredWhen(prefersPhone))).
		Add(FieldSkills, forms.NewList(NewSkillGroup()))
}

// prefersPhone makes phone mandatory while the sibling contact preference
// is "phone". It is evaluated on every validation pass, so switching back to
// email drops the failure without touching the phone value.
func prefersPhone(phone *forms.Node) bool {
	pref := phone.Root().Child(FieldContactPreference)
	return pref != nil && domain.ContactPreference(pref.Value()) == domain.ContactPhone
}

// NewSkillGroup returns an empty skill entry with every field required.
func NewSkillGroup() *forms.Node {
	return skillGroup(domain.Skill{})
}

func skillGroup(s domain.Skill) *forms.Node {
	return forms.NewGroup().
		Add(FieldSkillName, forms.NewLeaf(s.SkillName, forms.Required)).
		Add(FieldExperience, forms.NewLeaf(s.ExperienceInYears, forms.Required)).
		Add(FieldProficiency, forms.NewLeaf(s.Proficiency, forms.Required))
}

// SkillsList returns a skills list sized and filled from entries. Callers
// swap it in with SetControl since patching values cannot resize a list.
func SkillsList(entries []domain.Skill) *forms.Node {
	l := forms.NewList()
	for _, s := range entries {
		l.Append(skillGroup(s))
	}
	return l
}

// AddSkill appends an empty skill entry.
func AddSkill(form *forms.Node) {
	form.Child(FieldSkills).Append(NewSkillGroup())
}

// RemoveSkill drops skill entry i. The list is marked touched and dirty
// because the user changed the form even though no value did.
func RemoveSkill(form *forms.Node, i int) error {
	skills := form.Child(FieldSkills)
	if err := skills.RemoveAt(i); err != nil {
		return fmt.Errorf("remove skill: %w", err)
	}
	skills.MarkDirty()
	skills.MarkTouched()
	return nil
}

// Load fills the form from an existing record without marking anything
// dirty or touched.
func Load(form *forms.Node, e *domain.Employee) {
	form.Child(FieldFullName).SetValue(e.FullName)
	pref := e.ContactPreference
	if !pref.Valid() {
		pref = domain.DefaultContactPreference
	}
	form.Child(FieldContactPreference).SetValue(string(pref))
	form.Get(PathEmail).SetValue(e.Email)
	form.Get(PathConfirmEmail).SetValue(e.Email)
	form.Child(FieldPhone).SetValue(e.PhoneValue())
	form.SetControl(FieldSkills, SkillsList(e.Skills))
}

// ToEmployee copies the form values into a new record carrying base's ID.
func ToEmployee(form *forms.Node, base *domain.Employee) *domain.Employee {
	e := &domain.Employee{
		FullName:          form.Child(FieldFullName).Value(),
		ContactPreference: domain.ContactPreference(form.Child(FieldContactPreference).Value()),
		Email:             form.Get(PathEmail).Value(),
		Skills:            []domain.Skill{},
	}
	if base != nil {
		e.ID = base.ID
	}
	if phone := form.Child(FieldPhone).Value(); phone != "" {
		e.Phone = &phone
	}
	skills := form.Child(FieldSkills)
	for i := 0; i < skills.Len(); i++ {
		g := skills.At(i)
		e.Skills = append(e.Skills, domain.Skill{
			SkillName:         g.Child(FieldSkillName).Value(),
			ExperienceInYears: g.Child(FieldExperience).Value(),
			Proficiency:       g.Child(FieldProficiency).Value(),
		})
	}
	return e
}

// Messages returns the user-facing text for every failure the form can
// report, keyed by field name.
func Messages(emailDomain string) forms.Messages {
	return forms.Messages{
		FieldFullName: {
			forms.FailRequired:  "Full Name is required.",
			forms.FailMinLength: fmt.Sprintf("Full Name must be at least %d characters.", fullNameMin),
			forms.FailMaxLength: fmt.Sprintf("Full Name must be at most %d characters.", fullNameMax),
		},
		FieldEmail: {
			forms.FailRequired:    "Email is required.",
			forms.FailEmailDomain: "Email domain should be " + emailDomain + ".",
		},
		FieldConfirmEmail: {
			forms.FailRequired: "Confirm Email is required.",
		},
		FieldEmailGroup: {
			forms.FailEmailMismatch: "Email and Confirm Email do not match.",
		},
		FieldPhone: {
			forms.FailRequired: "Phone is required.",
		},
		FieldSkillName: {
			forms.FailRequired: "Skill Name is required.",
		},
		FieldExperience: {
			forms.FailRequired: "Experience is required.",
		},
		FieldProficiency: {
			forms.FailRequired: "Proficiency is required.",
		},
	}
}

// ValidateRecord checks a complete record as if every field had been
// visited and returns the messages for its failures; nil means valid.
func ValidateRecord(e *domain.Employee, emailDomain string) map[string]string {
	if e.ContactPreference != "" && !e.ContactPreference.Valid() {
		return map[string]string{
			FieldContactPreference: fmt.Sprintf("Contact Preference must be %q or %q.", domain.ContactEmail, domain.ContactPhone),
		}
	}
	form := Build(emailDomain)
	Load(form, e)
	form.MarkAllTouched()
	form.Validate()
	if form.Valid() {
		return nil
	}
	return forms.Collect(form, Messages(emailDomain))
}
