package employeeform_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/employee-registry/internal/domain"
	"github.com/csg33k/employee-registry/internal/employeeform"
	"github.com/csg33k/employee-registry/internal/forms"
)

const testDomain = "sysbiz.com"

func strPtr(s string) *string { return &s }

func validEmployee() *domain.Employee {
	return &domain.Employee{
		ID:                7,
		FullName:          "Jo Smith",
		ContactPreference: domain.ContactPhone,
		Email:             "jo@sysbiz.com",
		Phone:             strPtr("1234567890"),
		Skills: []domain.Skill{
			{SkillName: "Go", ExperienceInYears: "4", Proficiency: "Advanced"},
			{SkillName: "SQL", ExperienceInYears: "2", Proficiency: "Intermediate"},
		},
	}
}

func TestBuild_Shape(t *testing.T) {
	form := employeeform.Build(testDomain)

	assert.Equal(t, []string{"fullName", "contactPreference", "emailGroup", "phone", "skills"}, form.Names())
	assert.Equal(t, "email", form.Child("contactPreference").Value())
	assert.Equal(t, []string{"email", "confirmEmail"}, form.Child("emailGroup").Names())
	require.Equal(t, 1, form.Child("skills").Len())
	assert.Equal(t, []string{"skillName", "experienceInYears", "proficiency"}, form.Get("skills.0").Names())
}

func TestBuild_FullNameBounds(t *testing.T) {
	cases := map[string]forms.FailureKind{
		"":                      forms.FailRequired,
		"A":                     forms.FailMinLength,
		"Jo":                    "",
		strings.Repeat("a", 15): "",
		strings.Repeat("a", 16): forms.FailMaxLength,
	}
	for in, want := range cases {
		form := employeeform.Build(testDomain)
		form.Child("fullName").Input(in)
		form.Validate()
		got := form.Child("fullName").Failures()
		if want == "" {
			assert.Empty(t, got, "input %q", in)
		} else {
			assert.Equal(t, []forms.FailureKind{want}, got, "input %q", in)
		}
	}
}

func TestNewSkillGroup_RequiredAndEmpty(t *testing.T) {
	g := employeeform.NewSkillGroup()
	g.Validate()
	for _, name := range g.Names() {
		leaf := g.Child(name)
		assert.Equal(t, "", leaf.Value(), name)
		assert.True(t, leaf.HasFailure(forms.FailRequired), name)
	}
}

func TestAddAndRemoveSkill(t *testing.T) {
	form := employeeform.Build(testDomain)
	skills := form.Child("skills")
	skills.At(0).Child("skillName").SetValue("first")

	employeeform.AddSkill(form)
	employeeform.AddSkill(form)
	require.Equal(t, 3, skills.Len())
	skills.At(2).Child("skillName").SetValue("third")
	assert.False(t, skills.Dirty())
	assert.False(t, skills.Touched())

	require.NoError(t, employeeform.RemoveSkill(form, 1))
	require.Equal(t, 2, skills.Len())
	assert.Equal(t, "third", form.Get("skills.1.skillName").Value())
	assert.True(t, skills.Dirty(), "list should be dirty after removal")
	assert.True(t, skills.Touched(), "list should be touched after removal")

	assert.Error(t, employeeform.RemoveSkill(form, 9))
}

func TestLoad_ReplacesSkillsList(t *testing.T) {
	form := employeeform.Build(testDomain)
	e := validEmployee()
	employeeform.Load(form, e)

	assert.Equal(t, "Jo Smith", form.Child("fullName").Value())
	assert.Equal(t, "phone", form.Child("contactPreference").Value())
	assert.Equal(t, e.Email, form.Get("emailGroup.email").Value())
	assert.Equal(t, e.Email, form.Get("emailGroup.confirmEmail").Value())
	assert.Equal(t, "1234567890", form.Child("phone").Value())
	require.Equal(t, 2, form.Child("skills").Len())
	assert.Equal(t, "SQL", form.Get("skills.1.skillName").Value())
	assert.True(t, form.Pristine(), "loading must not mark the form dirty")
	assert.False(t, form.Touched())

	form.Validate()
	assert.True(t, form.Valid())
}

func TestLoad_ZeroSkills(t *testing.T) {
	form := employeeform.Build(testDomain)
	e := validEmployee()
	e.Skills = nil
	employeeform.Load(form, e)
	assert.Equal(t, 0, form.Child("skills").Len())
}

func TestToEmployee(t *testing.T) {
	form := employeeform.Build(testDomain)
	employeeform.Load(form, validEmployee())
	form.Child("phone").Input("")
	form.Get("emailGroup.email").Input("new@sysbiz.com")

	got := employeeform.ToEmployee(form, &domain.Employee{ID: 42})
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "new@sysbiz.com", got.Email)
	assert.Nil(t, got.Phone)
	require.Len(t, got.Skills, 2)
	assert.Equal(t, domain.Skill{SkillName: "Go", ExperienceInYears: "4", Proficiency: "Advanced"}, got.Skills[0])

	created := employeeform.ToEmployee(form, nil)
	assert.Zero(t, created.ID)
}

func TestContactPreferenceTogglesPhoneRequirement(t *testing.T) {
	form := employeeform.Build(testDomain)
	phone := form.Child("phone")

	form.Validate()
	assert.Empty(t, phone.Failures())

	form.Child("contactPreference").Input("phone")
	form.Validate()
	assert.True(t, phone.HasFailure(forms.FailRequired))

	form.Child("contactPreference").Input("email")
	form.Validate()
	assert.Empty(t, phone.Failures(), "failure must clear without editing phone")
	assert.Equal(t, "", phone.Value())
}

func TestValidateRecord(t *testing.T) {
	assert.Nil(t, employeeform.ValidateRecord(validEmployee(), testDomain))

	bad := validEmployee()
	bad.FullName = "A"
	bad.Email = "jo@other.com"
	bad.Phone = nil
	bad.Skills[1].Proficiency = ""
	got := employeeform.ValidateRecord(bad, testDomain)
	assert.Equal(t, map[string]string{
		"fullName":             "Full Name must be at least 2 characters.",
		"emailGroup.email":     "Email domain should be sysbiz.com.",
		"phone":                "Phone is required.",
		"skills.1.proficiency": "Proficiency is required.",
	}, got)

	wrongPref := validEmployee()
	wrongPref.ContactPreference = "fax"
	assert.Contains(t, employeeform.ValidateRecord(wrongPref, testDomain), "contactPreference")
}
