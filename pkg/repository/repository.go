package repository

import (
	"context"

	"github.com/jobdeck/jobdeck/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type AccountRepo interface {
	CreateAccount(ctx context.Context, a *models.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByCompanyName(ctx context.Context, companyName string) (*models.Account, error)
	UpdateAccount(ctx context.Context, a *models.Account) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// JobQuery is the normalized filter set the query engine hands to the store.
// Zero values mean "no filter"; Limit and Offset are already clamped.
type JobQuery struct {
	OwnerID int64
	Search  string
	Status  models.JobStatus
	Type    models.JobType
	Sort    string
	Limit   int
	Offset  int
}

// Sort orders accepted by JobQuery.Sort.
const (
	SortRecent = "recent"
	SortOldest = "oldest"
	SortAtoZ   = "a-z"
	SortZtoA   = "z-a"
)

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	// ListJobs returns the matching page plus the total match count before
	// pagination.
	ListJobs(ctx context.Context, q JobQuery) ([]models.Job, int64, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
	// CountByStatus groups an owner's jobs by status. Statuses with no jobs
	// are absent from the map.
	CountByStatus(ctx context.Context, ownerID int64) (map[models.JobStatus]int64, error)
	// MonthlyCounts groups an owner's jobs by creation (year, month),
	// most recent bucket first.
	MonthlyCounts(ctx context.Context, ownerID int64) ([]models.MonthCount, error)
}
