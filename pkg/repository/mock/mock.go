package mock

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Accounts *mockAccountRepo
	Jobs     *mockJobRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Accounts: &mockAccountRepo{},
		Jobs:     &mockJobRepo{},
	}
}

type mockAccountRepo struct {
	Stored    []*models.Account
	CreateErr error
	nextID    int64
}

var _ repository.AccountRepo = (*mockAccountRepo)(nil)

func (m *mockAccountRepo) CreateAccount(ctx context.Context, a *models.Account) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *a
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	for _, a := range m.Stored {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range m.Stored {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAccountRepo) GetByCompanyName(ctx context.Context, companyName string) (*models.Account, error) {
	for _, a := range m.Stored {
		if a.CompanyName != nil && *a.CompanyName == companyName {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAccountRepo) UpdateAccount(ctx context.Context, a *models.Account) error {
	for i, stored := range m.Stored {
		if stored.ID == a.ID {
			updated := *a
			updated.PasswordHash = stored.PasswordHash
			m.Stored[i] = &updated
			return nil
		}
	}
	return nil
}

func (m *mockAccountRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	for _, a := range m.Stored {
		if a.ID == id {
			a.PasswordHash = passwordHash
		}
	}
	return nil
}

// mockJobRepo is a behavioral in-memory JobRepo: filtering, ordering and
// aggregation mirror the SQLite implementation so service tests can run
// without a database.
type mockJobRepo struct {
	Stored    []*models.Job
	CreateErr error
	ListErr   error
	nextID    int64
}

var _ repository.JobRepo = (*mockJobRepo)(nil)

func (m *mockJobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *j
	stored.ID = m.nextID
	if stored.Created == 0 {
		stored.Created = m.nextID
	}
	stored.Updated = stored.Created
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *mockJobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	for _, j := range m.Stored {
		if j.ID == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockJobRepo) ListJobs(ctx context.Context, q repository.JobQuery) ([]models.Job, int64, error) {
	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}

	var matched []models.Job
	for _, j := range m.Stored {
		if q.OwnerID != 0 && j.CreatedBy != q.OwnerID {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(j.Role), strings.ToLower(q.Search)) {
			continue
		}
		if q.Status != "" && j.Status != q.Status {
			continue
		}
		if q.Type != "" && j.Type != q.Type {
			continue
		}
		matched = append(matched, *j)
	}

	sort.SliceStable(matched, func(i, k int) bool {
		a, b := matched[i], matched[k]
		switch q.Sort {
		case repository.SortOldest:
			if a.Created != b.Created {
				return a.Created < b.Created
			}
			return a.ID < b.ID
		case repository.SortAtoZ:
			if !strings.EqualFold(a.Role, b.Role) {
				return strings.ToLower(a.Role) < strings.ToLower(b.Role)
			}
			return a.ID < b.ID
		case repository.SortZtoA:
			if !strings.EqualFold(a.Role, b.Role) {
				return strings.ToLower(a.Role) > strings.ToLower(b.Role)
			}
			return a.ID > b.ID
		default:
			if a.Created != b.Created {
				return a.Created > b.Created
			}
			return a.ID > b.ID
		}
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func (m *mockJobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	for i, stored := range m.Stored {
		if stored.ID == j.ID {
			updated := *j
			updated.CreatedBy = stored.CreatedBy
			m.Stored[i] = &updated
			return nil
		}
	}
	return nil
}

func (m *mockJobRepo) DeleteJob(ctx context.Context, id int64) error {
	for i, stored := range m.Stored {
		if stored.ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockJobRepo) CountByStatus(ctx context.Context, ownerID int64) (map[models.JobStatus]int64, error) {
	out := make(map[models.JobStatus]int64)
	for _, j := range m.Stored {
		if j.CreatedBy == ownerID {
			out[j.Status]++
		}
	}
	return out, nil
}

func (m *mockJobRepo) MonthlyCounts(ctx context.Context, ownerID int64) ([]models.MonthCount, error) {
	type key struct{ y, mo int }
	counts := make(map[key]int64)
	for _, j := range m.Stored {
		if j.CreatedBy != ownerID {
			continue
		}
		t := time.UnixMilli(j.Created).UTC()
		counts[key{t.Year(), int(t.Month())}]++
	}

	out := make([]models.MonthCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, models.MonthCount{Year: k.y, Month: k.mo, Count: c})
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Year != out[k].Year {
			return out[i].Year > out[k].Year
		}
		return out[i].Month > out[k].Month
	})
	return out, nil
}
