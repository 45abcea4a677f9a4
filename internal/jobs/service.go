// Package jobs implements the job record service: filtered queries,
// status and monthly aggregations, and the validated mutation pipeline.
package jobs

import (
	"context"

	"log/slog"

	"github.com/jobdeck/jobdeck/internal/authz"
	"github.com/jobdeck/jobdeck/pkg/apperr"
	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// privilegedRoles may create jobs and mutate jobs they do not own.
var privilegedRoles = []models.Role{models.RoleCompany, models.RoleAdmin}

type Service struct {
	repo   repository.JobRepo
	logger *slog.Logger
}

func NewService(repo repository.JobRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateParams carries the client-supplied fields for a new job. The owner
// is never part of it; createdBy is always forced to the caller.
type CreateParams struct {
	Company     string           `json:"company"`
	Role        string           `json:"role"`
	Status      models.JobStatus `json:"status"`
	Type        models.JobType   `json:"type"`
	Location    string           `json:"location"`
	SalaryRange string           `json:"salaryRange"`
	Description string           `json:"description"`
}

// UpdateParams uses pointers so "field absent" and "field set to zero value"
// stay distinguishable; only supplied fields are applied.
type UpdateParams struct {
	Company     *string           `json:"company"`
	Role        *string           `json:"role"`
	Status      *models.JobStatus `json:"status"`
	Type        *models.JobType   `json:"type"`
	Location    *string           `json:"location"`
	SalaryRange *string           `json:"salaryRange"`
	Description *string           `json:"description"`
}

// ListParams are the raw query inputs; List clamps page and limit.
type ListParams struct {
	Search  string
	Status  string
	JobType string
	Sort    string
	Page    int
	Limit   int
}

type ListResult struct {
	Jobs       []models.Job `json:"jobs"`
	TotalJobs  int64        `json:"totalJobs"`
	NumOfPages int64        `json:"numOfPages"`
}

// Create persists a new job owned by the caller. Creation is restricted to
// company and admin accounts.
func (s *Service) Create(ctx context.Context, caller models.Caller, p CreateParams) (*models.Job, error) {
	if err := authz.RequireRole(caller, privilegedRoles...); err != nil {
		return nil, err
	}

	if p.Company == "" || p.Role == "" {
		return nil, apperr.New(apperr.Validation, "please provide company name and role title")
	}
	if p.Status == "" {
		p.Status = models.DefaultJobStatus
	}
	if p.Type == "" {
		p.Type = models.DefaultJobType
	}
	if p.Location == "" {
		p.Location = models.DefaultJobLocation
	}
	if !p.Status.Valid() {
		return nil, apperr.Errorf(apperr.Validation, "unknown status %q", p.Status)
	}
	if !p.Type.Valid() {
		return nil, apperr.Errorf(apperr.Validation, "unknown job type %q", p.Type)
	}

	job := &models.Job{
		Company:     p.Company,
		Role:        p.Role,
		Status:      p.Status,
		Type:        p.Type,
		Location:    p.Location,
		SalaryRange: p.SalaryRange,
		Description: p.Description,
		CreatedBy:   caller.ID,
	}

	id, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job created", slog.Int64("job_id", id), slog.Int64("account_id", caller.ID))
	return created, nil
}

// Get returns a caller-visible job. Records owned by someone else come back
// as NotFound rather than Unauthorized, so their existence is not leaked;
// admins see everything.
func (s *Service) Get(ctx context.Context, caller models.Caller, id int64) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil || !visible(caller, job) {
		return nil, apperr.Errorf(apperr.NotFound, "no job with id %d", id)
	}

	return job, nil
}

// List returns the caller's jobs filtered, sorted and paginated, plus the
// pre-pagination total and page count.
func (s *Service) List(ctx context.Context, caller models.Caller, p ListParams) (*ListResult, error) {
	page := p.Page
	if page < 1 {
		page = defaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	q := repository.JobQuery{
		OwnerID: caller.ID,
		Search:  p.Search,
		Sort:    p.Sort,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}
	// "all" and absent both mean no filter
	if p.Status != "" && p.Status != "all" {
		q.Status = models.JobStatus(p.Status)
	}
	if p.JobType != "" && p.JobType != "all" {
		q.Type = models.JobType(p.JobType)
	}

	jobs, total, err := s.repo.ListJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	return &ListResult{
		Jobs:       jobs,
		TotalJobs:  total,
		NumOfPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

// Update applies the supplied fields to an existing job after the
// authorization policy has passed against the record's owner.
func (s *Service) Update(ctx context.Context, caller models.Caller, id int64, p UpdateParams) (*models.Job, error) {
	// empty means "clear", which is disallowed for required fields
	if (p.Company != nil && *p.Company == "") || (p.Role != nil && *p.Role == "") {
		return nil, apperr.New(apperr.Validation, "please provide company name and role title")
	}
	if p.Location != nil && *p.Location == "" {
		return nil, apperr.New(apperr.Validation, "location must not be empty")
	}

	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.Errorf(apperr.NotFound, "no job with id %d", id)
	}

	if err := authz.CheckPermission(caller, job.CreatedBy, privilegedRoles...); err != nil {
		return nil, err
	}

	if p.Company != nil {
		job.Company = *p.Company
	}
	if p.Role != nil {
		job.Role = *p.Role
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, apperr.Errorf(apperr.Validation, "unknown status %q", *p.Status)
		}
		job.Status = *p.Status
	}
	if p.Type != nil {
		if !p.Type.Valid() {
			return nil, apperr.Errorf(apperr.Validation, "unknown job type %q", *p.Type)
		}
		job.Type = *p.Type
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.SalaryRange != nil {
		job.SalaryRange = *p.SalaryRange
	}
	if p.Description != nil {
		job.Description = *p.Description
	}

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	return s.repo.GetJob(ctx, id)
}

// Delete removes an existing job after the same permission check the update
// path runs.
func (s *Service) Delete(ctx context.Context, caller models.Caller, id int64) error {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return apperr.Errorf(apperr.NotFound, "no job with id %d", id)
	}

	if err := authz.CheckPermission(caller, job.CreatedBy, privilegedRoles...); err != nil {
		return err
	}

	if err := s.repo.DeleteJob(ctx, id); err != nil {
		return err
	}

	s.logger.Info("job deleted", slog.Int64("job_id", id), slog.Int64("account_id", caller.ID))
	return nil
}

func visible(caller models.Caller, job *models.Job) bool {
	return job.CreatedBy == caller.ID || caller.Role == models.RoleAdmin
}
