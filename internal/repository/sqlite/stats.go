package sqlite

import (
	"context"

	"github.com/jobdeck/jobdeck/pkg/models"
)

func (r *SQLiteRepo) CountByStatus(ctx context.Context, ownerID int64) (map[models.JobStatus]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT status, COUNT(*) FROM jobs WHERE created_by = ? GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.JobStatus]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}

		out[models.JobStatus(status)] = count
	}

	return out, rows.Err()
}

// MonthlyCounts groups an owner's jobs by creation year and month, most
// recent bucket first. Timestamps are stored as unix milliseconds, hence
// the /1000 before the unixepoch conversion.
func (r *SQLiteRepo) MonthlyCounts(ctx context.Context, ownerID int64) ([]models.MonthCount, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT CAST(strftime('%Y', created / 1000, 'unixepoch') AS INTEGER) AS year,
		       CAST(strftime('%m', created / 1000, 'unixepoch') AS INTEGER) AS month,
		       COUNT(*)
		FROM jobs
		WHERE created_by = ?
		GROUP BY year, month
		ORDER BY year DESC, month DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MonthCount
	for rows.Next() {
		var mc models.MonthCount
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, err
		}

		out = append(out, mc)
	}

	return out, rows.Err()
}
