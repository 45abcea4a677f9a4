package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	migrations "github.com/jobdeck/jobdeck/db"
	dbpkg "github.com/jobdeck/jobdeck/internal/db"
	"github.com/jobdeck/jobdeck/internal/repository/sqlite"
	"github.com/jobdeck/jobdeck/pkg/apperr"
	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/repository"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, *dbpkg.DB) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, migrations.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return sqlite.New(d, nil), d
}

func TestAccountCRUD(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	// nil account should error
	if _, err := repo.CreateAccount(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil account")
	}

	// Non-existing lookups return nil, nil
	if got, err := repo.GetByID(ctx, 9999); err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing id, got %#v, %v", got, err)
	}
	if got, err := repo.GetByEmail(ctx, "nobody@example.com"); err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing email, got %#v, %v", got, err)
	}

	companyName := "Acme Inc"
	account := &models.Account{
		Name:         "Alice",
		Email:        "alice@acme.com",
		Role:         models.RoleCompany,
		CompanyName:  &companyName,
		PasswordHash: "hash-1",
	}
	id, err := repo.CreateAccount(ctx, account)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	got, err := repo.GetByEmail(ctx, "alice@acme.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.Name != "Alice" || got.Role != models.RoleCompany {
		t.Fatalf("unexpected account: %#v", got)
	}
	if got.CompanyName == nil || *got.CompanyName != companyName {
		t.Fatalf("company name not persisted: %#v", got.CompanyName)
	}

	byCompany, err := repo.GetByCompanyName(ctx, companyName)
	if err != nil || byCompany == nil || byCompany.ID != id {
		t.Fatalf("GetByCompanyName: %#v, %v", byCompany, err)
	}

	// duplicate email maps to Conflict
	dup := &models.Account{Name: "Alice2", Email: "alice@acme.com", Role: models.RoleIndividual, PasswordHash: "x"}
	if _, err := repo.CreateAccount(ctx, dup); apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected Conflict for duplicate email, got %v", err)
	}

	// duplicate company name maps to Conflict
	dup2 := &models.Account{Name: "Evil", Email: "evil@acme.com", Role: models.RoleCompany, CompanyName: &companyName, PasswordHash: "x"}
	if _, err := repo.CreateAccount(ctx, dup2); apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected Conflict for duplicate company name, got %v", err)
	}
}

func TestUpdateAccount_DoesNotTouchPassword(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	account := &models.Account{Name: "Bob", Email: "bob@example.com", Role: models.RoleIndividual, PasswordHash: "original-hash"}
	id, err := repo.CreateAccount(ctx, account)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	account.ID = id

	account.Name = "Robert"
	account.PasswordHash = "should-be-ignored"
	if err := repo.UpdateAccount(ctx, account); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Robert" {
		t.Fatalf("name not updated: %q", got.Name)
	}
	if got.PasswordHash != "original-hash" {
		t.Fatalf("password hash modified by profile update: %q", got.PasswordHash)
	}

	if err := repo.UpdatePassword(ctx, id, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	got, _ = repo.GetByID(ctx, id)
	if got.PasswordHash != "new-hash" {
		t.Fatalf("password hash not updated: %q", got.PasswordHash)
	}
}

func TestJobCRUD(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateJob(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil job")
	}
	if got, err := repo.GetJob(ctx, 1234); err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing job, got %#v, %v", got, err)
	}

	job := &models.Job{
		Company:     "Acme",
		Role:        "Engineer",
		Status:      models.StatusPending,
		Type:        models.TypeFullTime,
		Location:    "United States",
		SalaryRange: "100-120k",
		Description: "Backend role",
		CreatedBy:   1,
	}
	id, err := repo.CreateJob(ctx, job)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	got, err := repo.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.Company != "Acme" || got.Status != models.StatusPending || got.Created == 0 {
		t.Fatalf("unexpected job: %#v", got)
	}

	got.Status = models.StatusInterview
	got.CreatedBy = 999 // must be ignored: ownership is immutable
	if err := repo.UpdateJob(ctx, got); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	updated, _ := repo.GetJob(ctx, id)
	if updated.Status != models.StatusInterview {
		t.Fatalf("status not updated: %q", updated.Status)
	}
	if updated.CreatedBy != 1 {
		t.Fatalf("createdBy mutated to %d", updated.CreatedBy)
	}

	if err := repo.DeleteJob(ctx, id); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if gone, _ := repo.GetJob(ctx, id); gone != nil {
		t.Fatalf("job still present after delete")
	}
}

// insertJob writes a row with a controlled created timestamp.
func insertJob(t *testing.T, d *dbpkg.DB, owner int64, role string, status models.JobStatus, typ models.JobType, created time.Time) {
	t.Helper()
	ms := created.UnixMilli()
	_, err := d.Exec(context.Background(),
		`INSERT INTO jobs (company, role, status, type, location, salary_range, description, created_by, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"Acme", role, string(status), string(typ), "United States", "", "", owner, ms, ms)
	if err != nil {
		t.Fatalf("insert job: %v", err)
	}
}

func TestListJobs_FilterSortPaginate(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	insertJob(t, d, 1, "Zoologist", models.StatusInterview, models.TypeFullTime, base.AddDate(0, 0, 1))
	insertJob(t, d, 1, "Analyst", models.StatusInterview, models.TypeRemote, base.AddDate(0, 0, 2))
	insertJob(t, d, 1, "Manager", models.StatusPending, models.TypeFullTime, base.AddDate(0, 0, 3))
	insertJob(t, d, 1, "Backend Engineer", models.StatusApplied, models.TypePartTime, base.AddDate(0, 0, 4))
	insertJob(t, d, 1, "Frontend Engineer", models.StatusDeclined, models.TypeRemote, base.AddDate(0, 0, 5))
	insertJob(t, d, 2, "Spy", models.StatusInterview, models.TypeFullTime, base.AddDate(0, 0, 6))

	// owner scope
	jobs, total, err := repo.ListJobs(ctx, repository.JobQuery{OwnerID: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if total != 5 || len(jobs) != 5 {
		t.Fatalf("owner scope: total=%d len=%d", total, len(jobs))
	}

	// status filter with a-z sort and page size 2
	jobs, total, err = repo.ListJobs(ctx, repository.JobQuery{
		OwnerID: 1,
		Status:  models.StatusInterview,
		Sort:    repository.SortAtoZ,
		Limit:   2,
	})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if total != 2 || len(jobs) != 2 {
		t.Fatalf("interview filter: total=%d len=%d", total, len(jobs))
	}
	if jobs[0].Role != "Analyst" || jobs[1].Role != "Zoologist" {
		t.Fatalf("a-z order wrong: %q, %q", jobs[0].Role, jobs[1].Role)
	}

	// case-insensitive substring search on role
	jobs, total, err = repo.ListJobs(ctx, repository.JobQuery{OwnerID: 1, Search: "ENGINEER", Limit: 10})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if total != 2 {
		t.Fatalf("search: total=%d want 2", total)
	}

	// type filter
	_, total, err = repo.ListJobs(ctx, repository.JobQuery{OwnerID: 1, Type: models.TypeRemote, Limit: 10})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if total != 2 {
		t.Fatalf("type filter: total=%d want 2", total)
	}

	// pagination: page 2 of size 2 under recent ordering
	jobs, total, err = repo.ListJobs(ctx, repository.JobQuery{OwnerID: 1, Sort: repository.SortRecent, Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if total != 5 || len(jobs) != 2 {
		t.Fatalf("pagination: total=%d len=%d", total, len(jobs))
	}
	if jobs[0].Role != "Manager" || jobs[1].Role != "Analyst" {
		t.Fatalf("recent page 2 wrong: %q, %q", jobs[0].Role, jobs[1].Role)
	}

	// offset past the end yields an empty page but the true total
	jobs, total, err = repo.ListJobs(ctx, repository.JobQuery{OwnerID: 1, Limit: 2, Offset: 100})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if total != 5 || len(jobs) != 0 {
		t.Fatalf("past-end page: total=%d len=%d", total, len(jobs))
	}
}

func TestCountByStatus(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()

	base := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	insertJob(t, d, 1, "A", models.StatusInterview, models.TypeFullTime, base)
	insertJob(t, d, 1, "B", models.StatusInterview, models.TypeFullTime, base)
	insertJob(t, d, 1, "C", models.StatusPending, models.TypeFullTime, base)
	insertJob(t, d, 2, "D", models.StatusDeclined, models.TypeFullTime, base)

	counts, err := repo.CountByStatus(ctx, 1)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[models.StatusInterview] != 2 || counts[models.StatusPending] != 1 {
		t.Fatalf("unexpected counts: %#v", counts)
	}
	if _, ok := counts[models.StatusDeclined]; ok {
		t.Fatalf("foreign owner's jobs leaked into counts")
	}
}

func TestMonthlyCounts(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()

	mk := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 15, 30, 0, 0, time.UTC)
	}
	insertJob(t, d, 1, "A", models.StatusPending, models.TypeFullTime, mk(2023, time.November, 3))
	insertJob(t, d, 1, "B", models.StatusPending, models.TypeFullTime, mk(2024, time.January, 10))
	insertJob(t, d, 1, "C", models.StatusPending, models.TypeFullTime, mk(2024, time.January, 20))
	insertJob(t, d, 1, "D", models.StatusPending, models.TypeFullTime, mk(2024, time.March, 5))
	insertJob(t, d, 2, "E", models.StatusPending, models.TypeFullTime, mk(2024, time.March, 6))

	buckets, err := repo.MonthlyCounts(ctx, 1)
	if err != nil {
		t.Fatalf("MonthlyCounts: %v", err)
	}

	want := []models.MonthCount{
		{Year: 2024, Month: 3, Count: 1},
		{Year: 2024, Month: 1, Count: 2},
		{Year: 2023, Month: 11, Count: 1},
	}
	if len(buckets) != len(want) {
		t.Fatalf("len = %d, want %d (%#v)", len(buckets), len(want), buckets)
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, buckets[i], want[i])
		}
	}
}
