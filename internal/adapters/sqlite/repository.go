package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/employee-registry/internal/domain"
)

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database. Apply the schema with `mage dbup` or call
// Migrate to do it in-process.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// ── Employees ─────────────────────────────────────────────────────────────────

func (r *Repository) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO employees (
			full_name, contact_preference, email, phone, created_at, updated_at
		) VALUES (?,?,?,?,?,?)`,
		e.FullName, string(e.ContactPreference), e.Email, nullString(e.Phone),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := insertSkills(ctx, tx, id, e.Skills); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	e := &domain.Employee{}
	var pref string
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, contact_preference, email, phone
		FROM employees WHERE id=?`, id).Scan(
		&e.ID, &e.FullName, &pref, &e.Email, &phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	e.ContactPreference = domain.ContactPreference(pref)
	e.Phone = stringPtr(phone)

	skills, err := r.skillsByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Skills = skills[id]
	if e.Skills == nil {
		e.Skills = []domain.Skill{}
	}
	return e, nil
}

func (r *Repository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, contact_preference, email, phone
		FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []domain.Employee{}
	for rows.Next() {
		var e domain.Employee
		var pref string
		var phone sql.NullString
		if err := rows.Scan(&e.ID, &e.FullName, &pref, &e.Email, &phone); err != nil {
			return nil, err
		}
		e.ContactPreference = domain.ContactPreference(pref)
		e.Phone = stringPtr(phone)
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := r.skillsByEmployee(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Skills = skills[list[i].ID]
		if list[i].Skills == nil {
			list[i].Skills = []domain.Skill{}
		}
	}
	return list, nil
}

// UpdateEmployee rewrites the employee row and replaces its skills.
func (r *Repository) UpdateEmployee(ctx context.Context, e *domain.Employee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE employees
		SET full_name=?, contact_preference=?, email=?, phone=?, updated_at=?
		WHERE id=?`,
		e.FullName, string(e.ContactPreference), e.Email, nullString(e.Phone),
		time.Now(), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("employee %d: %w", e.ID, domain.ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM skills WHERE employee_id=?`, e.ID); err != nil {
		return fmt.Errorf("clear skills: %w", err)
	}
	if err := insertSkills(ctx, tx, e.ID, e.Skills); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repository) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ── Skills ────────────────────────────────────────────────────────────────────

func insertSkills(ctx context.Context, tx *sql.Tx, employeeID int64, skills []domain.Skill) error {
	for i, s := range skills {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO skills (
				employee_id, position, skill_name, experience_in_years, proficiency
			) VALUES (?,?,?,?,?)`,
			employeeID, i, s.SkillName, s.ExperienceInYears, s.Proficiency,
		); err != nil {
			return fmt.Errorf("insert skill %d: %w", i, err)
		}
	}
	return nil
}

// skillsByEmployee loads skills grouped by employee in display order. An
// employeeID of 0 loads every employee's skills.
func (r *Repository) skillsByEmployee(ctx context.Context, employeeID int64) (map[int64][]domain.Skill, error) {
	query := `
		SELECT employee_id, skill_name, experience_in_years, proficiency
		FROM skills`
	var args []any
	if employeeID != 0 {
		query += ` WHERE employee_id=?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY employee_id, position`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int64][]domain.Skill)
	for rows.Next() {
		var id int64
		var s domain.Skill
		if err := rows.Scan(&id, &s.SkillName, &s.ExperienceInYears, &s.Proficiency); err != nil {
			return nil, err
		}
		out[id] = append(out[id], s)
	}
	return out, rows.Err()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
