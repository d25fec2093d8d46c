// Package templates renders the employee screens. Each page is an
// html/template source exposed as a templ.Component so handlers render
// every screen through the same templ call.
package templates

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/csg33k/employee-registry/internal/domain"
	"github.com/csg33k/employee-registry/internal/employeeform"
)

var baseTmpl = template.Must(template.New("base").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} · Employee Registry</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root{--ink:#0d1117;--paper:#f5f0e8;--ledger:#e8e0cc;--accent:#c0392b;--accent2:#2c6e49;--muted:#6b5e4e;--rule:#b8a898;}
  *{box-sizing:border-box;}
  body{background:var(--paper);color:var(--ink);font-family:'IBM Plex Sans',sans-serif;min-height:100vh;margin:0;}
  .mono{font-family:'IBM Plex Mono',monospace;}
  .card{background:rgba(255,255,255,0.7);border:1px solid var(--ledger);border-left:4px solid var(--ink);}
  .field{margin-bottom:12px;}
  .field-label{font-family:'IBM Plex Mono',monospace;font-size:0.6rem;font-weight:600;letter-spacing:0.1em;text-transform:uppercase;color:var(--muted);display:block;margin-bottom:2px;}
  .field-error{font-size:0.75rem;color:var(--accent);margin-top:3px;}
  .has-error input,.has-error select{border-bottom-color:var(--accent);}
  input[type=text],input[type=email],select{background:white;border:1px solid var(--rule);border-bottom:2px solid var(--ink);padding:6px 8px;font-family:'IBM Plex Mono',monospace;font-size:0.85rem;width:100%;outline:none;}
  .btn{font-family:'IBM Plex Mono',monospace;font-weight:600;font-size:0.8rem;letter-spacing:0.08em;padding:8px 18px;border:2px solid var(--ink);cursor:pointer;text-transform:uppercase;background:white;}
  .btn:disabled{opacity:0.4;cursor:not-allowed;}
  .btn-primary{background:var(--ink);color:white;}
  .btn-primary:hover:enabled{background:var(--accent);border-color:var(--accent);}
  .btn-danger{color:var(--accent);border-color:var(--accent);}
  .btn-danger:hover{background:var(--accent);color:white;}
  .btn-success{background:var(--accent2);color:white;border-color:var(--accent2);}
  .section-header{font-family:'IBM Plex Mono',monospace;font-size:0.7rem;font-weight:600;letter-spacing:0.18em;text-transform:uppercase;color:var(--muted);border-bottom:1px solid var(--rule);padding-bottom:4px;margin-bottom:16px;}
  .notice{border:2px solid var(--accent);color:var(--accent);padding:10px 14px;margin-bottom:16px;font-size:0.85rem;}
  table{width:100%;border-collapse:collapse;font-size:0.85rem;}
  th{font-family:'IBM Plex Mono',monospace;font-size:0.65rem;letter-spacing:0.1em;text-transform:uppercase;color:var(--muted);text-align:left;border-bottom:2px solid var(--ink);padding:6px;}
  td{border-bottom:1px solid var(--ledger);padding:8px 6px;}
</style>
<script>
  // Validation and service failures come back as re-rendered forms.
  document.addEventListener("htmx:beforeSwap", function (evt) {
    var s = evt.detail.xhr.status;
    if (s === 422 || s === 503) {
      evt.detail.shouldSwap = true;
      evt.detail.isError = false;
    }
  });
</script>
</head>
<body>
<div style="max-width:1000px;margin:0 auto;padding:32px 24px;">
<div style="display:flex;align-items:flex-end;justify-content:space-between;margin-bottom:28px;">
  <h1 class="mono" style="font-size:1.5rem;font-weight:600;margin:0;">
    <a href="/employees" style="color:inherit;text-decoration:none;">Employee Registry</a>
  </h1>
  <nav class="mono" style="font-size:0.75rem;display:flex;gap:16px;">
    <a href="/employees" style="color:var(--muted);">LIST</a>
    <a href="/employees/create" style="color:var(--muted);">CREATE</a>
  </nav>
</div>
{{template "content" .}}
</div>
</body>
</html>
{{define "employee-rows"}}
{{if .Notice}}<div class="notice" role="alert">{{.Notice}}</div>{{end}}
{{if not .Employees}}
<div class="card mono" style="padding:20px;text-align:center;font-size:0.8rem;color:var(--muted);">No employees yet.</div>
{{else}}
<table>
  <thead><tr><th>Name</th><th>Email</th><th>Phone</th><th>Contact</th><th>Skills</th><th></th></tr></thead>
  <tbody>
  {{range .Employees}}
  <tr>
    <td>{{.FullName}}</td>
    <td class="mono">{{.Email}}</td>
    <td class="mono">{{phone .}}</td>
    <td>{{.ContactPreference}}</td>
    <td>{{skillNames .Skills}}</td>
    <td style="white-space:nowrap;text-align:right;">
      <a href="/employees/edit/{{itoa .ID}}"><button class="btn" style="padding:4px 12px;font-size:0.7rem;">EDIT</button></a>
      <button class="btn btn-danger" style="padding:4px 12px;font-size:0.7rem;"
        hx-delete="/employees/{{itoa .ID}}"
        hx-target="#employee-list"
        hx-confirm="Delete {{.FullName}}?">DELETE</button>
    </td>
  </tr>
  {{end}}
  </tbody>
</table>
{{end}}
{{end}}
{{define "employee-form"}}
<form id="employee-form" class="card" style="padding:24px;"
      hx-post="/forms/{{.SessionID}}/submit" hx-target="this" hx-swap="outerHTML" hx-sync="this:queue all">
  <div class="section-header">{{.Title}}</div>
  {{if .Notice}}<div class="notice" role="alert">{{.Notice}}</div>{{end}}

  <div class="field{{if index .Errors "fullName"}} has-error{{end}}"
      hx-post="/forms/{{$.SessionID}}/touch" hx-trigger="focusout" hx-vals='{"path":"fullName"}'>
    <label class="field-label" for="fullName">Full Name</label>
    <input id="fullName" type="text" name="fullName" value="{{.FullName}}"
      hx-post="/forms/{{.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"fullName"}'>
    {{with index .Errors "fullName"}}<div class="field-error">{{.}}</div>{{end}}
  </div>

  <div class="field">
    <span class="field-label">Contact Preference</span>
    <label><input id="contact-email" type="radio" name="contactPreference" value="email"{{if eq .ContactPreference "email"}} checked{{end}}
      hx-post="/forms/{{.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"contactPreference"}'> Email</label>
    <label style="margin-left:16px;"><input id="contact-phone" type="radio" name="contactPreference" value="phone"{{if eq .ContactPreference "phone"}} checked{{end}}
      hx-post="/forms/{{.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"contactPreference"}'> Phone</label>
  </div>

  <div style="display:grid;grid-template-columns:1fr 1fr;gap:12px;">
    <div class="field{{if index .Errors "emailGroup.email"}} has-error{{end}}"
      hx-post="/forms/{{$.SessionID}}/touch" hx-trigger="focusout" hx-vals='{"path":"emailGroup.email"}'>
      <label class="field-label" for="email">Email</label>
      <input id="email" type="text" name="emailGroup.email" value="{{.Email}}"
        hx-post="/forms/{{.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"emailGroup.email"}'>
      {{with index .Errors "emailGroup.email"}}<div class="field-error">{{.}}</div>{{end}}
    </div>
    <div class="field{{if index .Errors "emailGroup.confirmEmail"}} has-error{{end}}"
      hx-post="/forms/{{$.SessionID}}/touch" hx-trigger="focusout" hx-vals='{"path":"emailGroup.confirmEmail"}'>
      <label class="field-label" for="confirmEmail">Confirm Email</label>
      <input id="confirmEmail" type="text" name="emailGroup.confirmEmail" value="{{.ConfirmEmail}}"
        hx-post="/forms/{{.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"emailGroup.confirmEmail"}'>
      {{with index .Errors "emailGroup.confirmEmail"}}<div class="field-error">{{.}}</div>{{end}}
    </div>
  </div>
  {{with index .Errors "emailGroup"}}<div class="field-error" style="margin:-6px 0 12px;">{{.}}</div>{{end}}

  <div class="field{{if index .Errors "phone"}} has-error{{end}}"
      hx-post="/forms/{{$.SessionID}}/touch" hx-trigger="focusout" hx-vals='{"path":"phone"}'>
    <label class="field-label" for="phone">Phone{{if .PhoneRequired}} *{{end}}</label>
    <input id="phone" type="text" name="phone" value="{{.Phone}}"
      hx-post="/forms/{{.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"phone"}'>
    {{with index .Errors "phone"}}<div class="field-error">{{.}}</div>{{end}}
  </div>

  <div class="section-header" style="margin-top:20px;">Skills</div>
  {{range $skill := .Skills}}
  <div class="card" style="padding:12px 14px;margin-bottom:10px;">
    <div style="display:grid;grid-template-columns:2fr 1fr 1.4fr auto;gap:10px;align-items:start;">
      <div class="field{{if index $skill.Errors "skillName"}} has-error{{end}}"
        hx-post="/forms/{{$.SessionID}}/touch" hx-trigger="focusout" hx-vals='{"path":"skills.{{$skill.Index}}.skillName"}'>
        <label class="field-label" for="skills-{{$skill.Index}}-skillName">Skill</label>
        <input id="skills-{{$skill.Index}}-skillName" type="text" name="skills.{{$skill.Index}}.skillName" value="{{$skill.SkillName}}"
          hx-post="/forms/{{$.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"skills.{{$skill.Index}}.skillName"}'>
        {{with index $skill.Errors "skillName"}}<div class="field-error">{{.}}</div>{{end}}
      </div>
      <div class="field{{if index $skill.Errors "experienceInYears"}} has-error{{end}}"
        hx-post="/forms/{{$.SessionID}}/touch" hx-trigger="focusout" hx-vals='{"path":"skills.{{$skill.Index}}.experienceInYears"}'>
        <label class="field-label" for="skills-{{$skill.Index}}-experienceInYears">Experience (years)</label>
        <input id="skills-{{$skill.Index}}-experienceInYears" type="text" name="skills.{{$skill.Index}}.experienceInYears" value="{{$skill.ExperienceInYears}}"
          hx-post="/forms/{{$.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"skills.{{$skill.Index}}.experienceInYears"}'>
        {{with index $skill.Errors "experienceInYears"}}<div class="field-error">{{.}}</div>{{end}}
      </div>
      <div class="field{{if index $skill.Errors "proficiency"}} has-error{{end}}"
        hx-post="/forms/{{$.SessionID}}/touch" hx-trigger="focusout" hx-vals='{"path":"skills.{{$skill.Index}}.proficiency"}'>
        <label class="field-label" for="skills-{{$skill.Index}}-proficiency">Proficiency</label>
        <select id="skills-{{$skill.Index}}-proficiency" name="skills.{{$skill.Index}}.proficiency"
          hx-post="/forms/{{$.SessionID}}/input" hx-trigger="change" hx-vals='{"path":"skills.{{$skill.Index}}.proficiency"}'>
          <option value="">Select</option>
          {{range $.Proficiencies}}<option value="{{.}}"{{if eq . $skill.Proficiency}} selected{{end}}>{{.}}</option>{{end}}
        </select>
        {{with index $skill.Errors "proficiency"}}<div class="field-error">{{.}}</div>{{end}}
      </div>
      <div style="padding-top:14px;">
        {{if gt (len $.Skills) 1}}
        <button type="button" class="btn btn-danger" style="padding:4px 10px;font-size:0.7rem;"
          hx-delete="/forms/{{$.SessionID}}/skills/{{$skill.Index}}">REMOVE</button>
        {{end}}
      </div>
    </div>
  </div>
  {{end}}
  <button type="button" class="btn" hx-post="/forms/{{.SessionID}}/skills"{{if not .SkillsValid}} disabled{{end}}>ADD SKILL +</button>

  <div style="margin-top:24px;display:flex;justify-content:flex-end;gap:10px;">
    <button type="button" class="btn" hx-delete="/forms/{{.SessionID}}">CANCEL</button>
    <button type="submit" class="btn btn-primary">{{if .Editing}}UPDATE{{else}}SAVE{{end}}</button>
  </div>
</form>
{{end}}`))

var listTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div style="display:flex;justify-content:space-between;align-items:center;margin-bottom:12px;">
  <div class="section-header" style="flex:1;margin:0;">Employees</div>
  <a href="/employees/report.pdf" class="mono" style="font-size:0.75rem;color:var(--muted);margin-left:16px;">PDF ROSTER</a>
</div>
<div id="employee-list">
  {{template "employee-rows" .}}
</div>
{{end}}`))

var formTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}{{template "employee-form" .}}{{end}}`))

var notFoundTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div class="card" style="padding:32px;text-align:center;">
  <div class="mono" style="font-size:2rem;font-weight:600;">404</div>
  <p>{{.Message}}</p>
  <a href="/employees" class="mono" style="font-size:0.8rem;">BACK TO THE LIST</a>
</div>
{{end}}`))

type listPage struct {
	Title     string
	Employees []domain.Employee
	Notice    string
}

type notFoundPage struct {
	Title   string
	Message string
}

// EmployeeList is the full list screen. A non-empty notice is shown above
// the table, e.g. when the records could not be loaded.
func EmployeeList(employees []domain.Employee, notice string) templ.Component {
	return component(listTmpl, "base", listPage{Title: "Employees", Employees: employees, Notice: notice})
}

// EmployeeRows is the #employee-list fragment swapped in after a delete.
func EmployeeRows(employees []domain.Employee, notice string) templ.Component {
	return component(listTmpl, "employee-rows", listPage{Employees: employees, Notice: notice})
}

// EmployeeFormPage is the full create or edit screen.
func EmployeeFormPage(v employeeform.View) templ.Component {
	return component(formTmpl, "base", v)
}

// EmployeeForm is the #employee-form fragment returned by every form
// interaction.
func EmployeeForm(v employeeform.View) templ.Component {
	return component(formTmpl, "employee-form", v)
}

func NotFound(message string) templ.Component {
	return component(notFoundTmpl, "base", notFoundPage{Title: "Not Found", Message: message})
}
