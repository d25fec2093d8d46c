package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/csg33k/employee-registry/internal/adapters/sqlite"
	"github.com/csg33k/employee-registry/internal/domain"
)

func newRepo(t *testing.T) *sqliteadapter.Repository {
	t.Helper()
	repo, err := sqliteadapter.New(filepath.Join(t.TempDir(), "employees.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.Migrate())
	return repo
}

func sample() *domain.Employee {
	phone := "5550100"
	return &domain.Employee{
		FullName:          "Ada Byron",
		ContactPreference: domain.ContactPhone,
		Email:             "ada@sysbiz.com",
		Phone:             &phone,
		Skills: []domain.Skill{
			{SkillName: "Math", ExperienceInYears: "10", Proficiency: "Advanced"},
			{SkillName: "Engines", ExperienceInYears: "3", Proficiency: "Intermediate"},
			{SkillName: "Poetry", ExperienceInYears: "1", Proficiency: "Beginner"},
		},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Migrate())
}

func TestRunMigrations_UpDown(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "employees.db")
	url := "sqlite3://" + path

	require.NoError(t, sqliteadapter.RunMigrations(url, "up"))
	require.NoError(t, sqliteadapter.RunMigrations(url, "up"), "a second up has nothing to do")

	repo, err := sqliteadapter.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.CreateEmployee(ctx, sample()))

	require.NoError(t, sqliteadapter.RunMigrations(url, "down"))
	assert.Error(t, repo.CreateEmployee(ctx, sample()), "tables are gone after down")

	assert.Error(t, sqliteadapter.RunMigrations(url, "sideways"))
	assert.Error(t, sqliteadapter.RunMigrations("", "up"))
}

func TestCreateAndGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	e := sample()
	require.NoError(t, repo.CreateEmployee(ctx, e))
	require.NotZero(t, e.ID)

	got, err := repo.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestCreate_NullPhoneAndNoSkills(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	e := &domain.Employee{FullName: "Bo", ContactPreference: domain.ContactEmail, Email: "bo@sysbiz.com"}
	require.NoError(t, repo.CreateEmployee(ctx, e))

	got, err := repo.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	assert.NotNil(t, got.Skills)
	assert.Empty(t, got.Skills)
}

func TestUpdate_ReplacesSkillsInOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	e := sample()
	require.NoError(t, repo.CreateEmployee(ctx, e))

	e.FullName = "Ada Lovelace"
	e.Phone = nil
	e.ContactPreference = domain.ContactEmail
	e.Skills = []domain.Skill{e.Skills[2], e.Skills[0]}
	require.NoError(t, repo.UpdateEmployee(ctx, e))

	got, err := repo.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestList_IncludesSkills(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	a, b := sample(), sample()
	b.FullName = "Grace"
	b.Skills = b.Skills[:1]
	require.NoError(t, repo.CreateEmployee(ctx, a))
	require.NoError(t, repo.CreateEmployee(ctx, b))

	list, err = repo.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ada Byron", list[0].FullName)
	assert.Len(t, list[0].Skills, 3)
	assert.Equal(t, "Grace", list[1].FullName)
	assert.Len(t, list[1].Skills, 1)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.GetEmployee(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.UpdateEmployee(ctx, &domain.Employee{ID: 99, FullName: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteEmployee(ctx, 99), domain.ErrNotFound)
}

func TestDelete_CascadesSkills(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	e := sample()
	require.NoError(t, repo.CreateEmployee(ctx, e))
	require.NoError(t, repo.DeleteEmployee(ctx, e.ID))

	_, err := repo.GetEmployee(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := sample()
	require.NoError(t, repo.CreateEmployee(ctx, other))
	got, err := repo.GetEmployee(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, got.Skills, 3, "skills of a deleted employee must not leak")
}
