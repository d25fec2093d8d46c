package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/csg33k/employee-registry/internal/domain"
)

func roster(n int) []domain.Employee {
	out := make([]domain.Employee, 0, n)
	phone := "5551234567"
	for i := 1; i <= n; i++ {
		e := domain.Employee{
			ID:                int64(i),
			FullName:          fmt.Sprintf("Employee %d", i),
			ContactPreference: domain.ContactEmail,
			Email:             fmt.Sprintf("e%d@sysbiz.com", i),
			Skills: []domain.Skill{
				{SkillName: "Go", ExperienceInYears: "3", Proficiency: "Advanced"},
				{SkillName: "SQL", ExperienceInYears: "1", Proficiency: "Beginner"},
			},
		}
		if i%2 == 0 {
			e.ContactPreference = domain.ContactPhone
			e.Phone = &phone
		}
		out = append(out, e)
	}
	return out
}

func TestGenerateRoster(t *testing.T) {
	tests := []struct {
		name      string
		employees []domain.Employee
	}{
		{"empty", nil},
		{"single", roster(1)},
		// enough detail blocks to force page breaks
		{"many", roster(40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := GenerateRoster(tt.employees, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), &buf); err != nil {
				t.Fatalf("GenerateRoster: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Fatalf("output does not start with a PDF header: %q", buf.Bytes()[:min(16, buf.Len())])
			}
			if !bytes.Contains(buf.Bytes(), []byte("%%EOF")) {
				t.Error("output has no EOF marker")
			}
		})
	}
}

func TestOrDash(t *testing.T) {
	if got := orDash("  "); got != "-" {
		t.Errorf("orDash(blank) = %q", got)
	}
	if got := orDash("555"); got != "555" {
		t.Errorf("orDash(555) = %q", got)
	}
}
