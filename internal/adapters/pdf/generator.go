// Package pdf generates a printable employee roster. The first page lists
// every employee; each employee then gets a detail block with contact
// information and a skills table.
package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/employee-registry/internal/domain"
)

// GenerateRoster writes the roster for employees to w. generated is printed
// in the footer of every page.
func GenerateRoster(employees []domain.Employee, generated time.Time, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 24)
	pdf.AliasNbPages("{nb}")

	stamp := generated.Format("Jan 02, 2006 15:04")
	pdf.SetHeaderFunc(func() { drawHeader(pdf) })
	pdf.SetFooterFunc(func() { drawFooter(pdf, len(employees), stamp) })

	pdf.AddPage()
	drawSummary(pdf, employees)
	for i := range employees {
		drawEmployee(pdf, &employees[i])
	}
	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf) {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-30, 7, "EMPLOYEE ROSTER", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(26, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(marginT + 14)
}

func drawFooter(pdf *fpdf.Fpdf, count int, stamp string) {
	pageW, pageH := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetXY(marginL, pageH-16)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by Employee Registry", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("%d employee(s) | %s", count, stamp), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// ── Summary table ────────────────────────────────────────────────────────────

func drawSummary(pdf *fpdf.Fpdf, employees []domain.Employee) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	nameW := contentW * 0.30
	emailW := contentW * 0.34
	phoneW := contentW * 0.20
	prefW := contentW - nameW - emailW - phoneW

	sectionTitle(pdf, contentW, "ALL EMPLOYEES")
	if len(employees) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 8, "No employees on record.", "1", 1, "C", false, 0, "")
		return
	}

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.CellFormat(nameW, 7, "Full Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(emailW, 7, "Email", "1", 0, "L", true, 0, "")
	pdf.CellFormat(phoneW, 7, "Phone", "1", 0, "L", true, 0, "")
	pdf.CellFormat(prefW, 7, "Contact", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8.5)
	for i, e := range employees {
		// Alternating row background
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(nameW, 6.5, e.FullName, "1", 0, "L", true, 0, "")
		pdf.CellFormat(emailW, 6.5, e.Email, "1", 0, "L", true, 0, "")
		pdf.CellFormat(phoneW, 6.5, orDash(e.PhoneValue()), "1", 0, "L", true, 0, "")
		pdf.CellFormat(prefW, 6.5, string(e.ContactPreference), "1", 1, "C", true, 0, "")
	}
	pdf.Ln(6)
}

// ── Employee detail ──────────────────────────────────────────────────────────

func drawEmployee(pdf *fpdf.Fpdf, e *domain.Employee) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// Keep the heading with at least the first skill row.
	if pdf.GetY()+34 > pageBottom(pdf) {
		pdf.AddPage()
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5.5, fmt.Sprintf("EMPLOYEE #%d", e.ID), "LRT", 1, "L", true, 0, "")

	colHalf := contentW / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colHalf, 6.5, e.FullName, "L", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colHalf, 6.5, "Prefers: "+string(e.ContactPreference), "R", 1, "R", false, 0, "")
	pdf.CellFormat(colHalf, 5.5, "Email: "+e.Email, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(colHalf, 5.5, "Phone: "+orDash(e.PhoneValue()), "RB", 1, "R", false, 0, "")
	pdf.Ln(2)

	nameW := contentW * 0.5
	expW := contentW * 0.2
	profW := contentW - nameW - expW

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(nameW, 6, "Skill", "1", 0, "L", true, 0, "")
	pdf.CellFormat(expW, 6, "Years", "1", 0, "C", true, 0, "")
	pdf.CellFormat(profW, 6, "Proficiency", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 8.5)
	if len(e.Skills) == 0 {
		pdf.CellFormat(contentW, 6, "No skills recorded.", "1", 1, "C", false, 0, "")
	}
	for _, s := range e.Skills {
		if s.Proficiency == "Advanced" {
			pdf.SetFillColor(220, 240, 220) // light green for advanced
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(nameW, 6, s.SkillName, "1", 0, "L", true, 0, "")
		pdf.CellFormat(expW, 6, s.ExperienceInYears, "1", 0, "C", true, 0, "")
		pdf.CellFormat(profW, 6, s.Proficiency, "1", 1, "L", true, 0, "")
	}
	pdf.Ln(6)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func sectionTitle(pdf *fpdf.Fpdf, w float64, title string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(w, 5.5, title, "LRT", 1, "L", true, 0, "")
}

func pageBottom(pdf *fpdf.Fpdf) float64 {
	_, pageH := pdf.GetPageSize()
	_, _, _, marginB := pdf.GetMargins()
	return pageH - marginB
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
