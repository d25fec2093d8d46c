package templates

import (
	"context"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/csg33k/employee-registry/internal/domain"
)

var funcs = template.FuncMap{
	"itoa":       itoa,
	"skillNames": skillNames,
	"phone":      phone,
}

// itoa converts an int64 to a string, used for building URL paths.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// skillNames joins the skill names of e for the list screen.
func skillNames(skills []domain.Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.SkillName != "" {
			names = append(names, s.SkillName)
		}
	}
	return strings.Join(names, ", ")
}

func phone(e domain.Employee) string {
	if v := e.PhoneValue(); v != "" {
		return v
	}
	return "-"
}

// component exposes the named template of t as a templ.Component.
func component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}
