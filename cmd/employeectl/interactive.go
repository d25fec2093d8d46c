package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/csg33k/employee-registry/internal/domain"
	"github.com/csg33k/employee-registry/internal/employeeform"
)

var errCancelled = errors.New("cancelled")

// prompter asks one question at a time. Input re-asks until validate
// accepts the answer.
type prompter interface {
	Input(message string, validate func(string) error) (string, error)
	Select(message string, options []string, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(message string, validate func(string) error) (string, error) {
	var out string
	err := survey.AskOne(&survey.Input{Message: message}, &out,
		survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Select(message string, options []string, def string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Select{Message: message, Options: options, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errCancelled
	}
	return err
}

// fillInteractively walks the user through a new employee, validating each
// answer with the same form rules the screens use.
func fillInteractively(p prompter, emailDomain string) (*domain.Employee, error) {
	s := employeeform.NewSession("employeectl", emailDomain, nil)

	ask := func(message, path string, extra ...string) error {
		_, err := p.Input(message, func(v string) error {
			return answerError(s, v, path, extra...)
		})
		return err
	}
	choose := func(message, path string, options []string, def string) error {
		v, err := p.Select(message, options, def)
		if err != nil {
			return err
		}
		return answerError(s, v, path)
	}

	if err := ask("Full Name:", employeeform.FieldFullName); err != nil {
		return nil, err
	}
	prefs := []string{string(domain.ContactEmail), string(domain.ContactPhone)}
	if err := choose("Contact Preference:", employeeform.FieldContactPreference, prefs, string(domain.DefaultContactPreference)); err != nil {
		return nil, err
	}
	if err := ask("Email:", employeeform.PathEmail); err != nil {
		return nil, err
	}
	if err := ask("Confirm Email:", employeeform.PathConfirmEmail, employeeform.FieldEmailGroup); err != nil {
		return nil, err
	}
	if err := ask("Phone:", employeeform.FieldPhone); err != nil {
		return nil, err
	}

	for i := 0; ; i++ {
		prefix := employeeform.FieldSkills + "." + strconv.Itoa(i) + "."
		if err := ask(fmt.Sprintf("Skill %d name:", i+1), prefix+employeeform.FieldSkillName); err != nil {
			return nil, err
		}
		if err := ask("Experience in years:", prefix+employeeform.FieldExperience); err != nil {
			return nil, err
		}
		if err := choose("Proficiency:", prefix+employeeform.FieldProficiency, domain.Proficiencies, domain.Proficiencies[0]); err != nil {
			return nil, err
		}
		more, err := p.Confirm("Add another skill?", false)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		s.AddSkill()
	}

	return s.Submit()
}

// answerError applies v to path and returns the message now shown for path
// or for any of the extra paths.
func answerError(s *employeeform.Session, v, path string, extra ...string) error {
	if err := s.Input(path, v); err != nil {
		return err
	}
	errs := s.Errors()
	for _, p := range append([]string{path}, extra...) {
		if msg := errs[p]; msg != "" {
			return errors.New(msg)
		}
	}
	return nil
}
