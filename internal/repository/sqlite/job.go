package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/repository"
)

const jobColumns = `id, company, role, status, type, location, salary_range, description, created_by, created, updated`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx,
		`INSERT INTO jobs (company, role, status, type, location, salary_range, description, created_by, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Company, j.Role, string(j.Status), string(j.Type), j.Location, j.SalaryRange, j.Description, j.CreatedBy, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	var j models.Job
	if err := scanJob(row.Scan, &j); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &j, nil
}

// ListJobs applies the filter, ordering and pagination of q, and counts the
// total matches before pagination with the same predicate.
func (r *SQLiteRepo) ListJobs(ctx context.Context, q repository.JobQuery) ([]models.Job, int64, error) {
	where, args := jobPredicate(q)

	var total int64
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + where + ` ORDER BY ` + jobOrder(q.Sort) + ` LIMIT ? OFFSET ?`
	rows, err := r.conn.QueryRows(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		var j models.Job
		if err := scanJob(rows.Scan, &j); err != nil {
			return nil, 0, err
		}

		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	// created_by is deliberately absent: ownership is immutable
	_, err := r.conn.Exec(ctx,
		`UPDATE jobs SET company = ?, role = ?, status = ?, type = ?, location = ?, salary_range = ?, description = ?, updated = ? WHERE id = ?`,
		j.Company, j.Role, string(j.Status), string(j.Type), j.Location, j.SalaryRange, j.Description, now(), j.ID)
	return err
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

// jobPredicate builds the shared WHERE clause for ListJobs' page and count
// queries. An empty owner id means no owner scoping.
func jobPredicate(q repository.JobQuery) (string, []any) {
	var conds []string
	var args []any

	if q.OwnerID != 0 {
		conds = append(conds, "created_by = ?")
		args = append(args, q.OwnerID)
	}
	if q.Search != "" {
		// instr avoids LIKE wildcard escaping for user-supplied text
		conds = append(conds, "instr(lower(role), lower(?)) > 0")
		args = append(args, q.Search)
	}
	if q.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(q.Status))
	}
	if q.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(q.Type))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// jobOrder maps a sort name to a deterministic ORDER BY clause; the id
// tiebreak keeps pagination stable across identical timestamps and roles.
func jobOrder(sort string) string {
	switch sort {
	case repository.SortOldest:
		return "created ASC, id ASC"
	case repository.SortAtoZ:
		return "role COLLATE NOCASE ASC, id ASC"
	case repository.SortZtoA:
		return "role COLLATE NOCASE DESC, id DESC"
	default:
		// recent, and the stable fallback for anything unrecognized
		return "created DESC, id DESC"
	}
}

func scanJob(scan func(dest ...any) error, j *models.Job) error {
	var status, jobType string
	if err := scan(&j.ID, &j.Company, &j.Role, &status, &jobType, &j.Location, &j.SalaryRange, &j.Description, &j.CreatedBy, &j.Created, &j.Updated); err != nil {
		return err
	}

	j.Status = models.JobStatus(status)
	j.Type = models.JobType(jobType)
	return nil
}
