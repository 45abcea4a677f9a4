package jobs

import (
	"context"
	"sort"
	"time"

	"github.com/jobdeck/jobdeck/pkg/models"
)

// monthlyWindow is the number of trailing calendar months reported by Stats.
const monthlyWindow = 6

// DefaultStats always carries all five statuses, zero-filled.
type DefaultStats struct {
	Applied            int64 `json:"applied"`
	UnderConsideration int64 `json:"underconsideration"`
	Interview          int64 `json:"interview"`
	Pending            int64 `json:"pending"`
	Declined           int64 `json:"declined"`
}

type MonthlyApplication struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type StatsResult struct {
	DefaultStats        DefaultStats         `json:"defaultStats"`
	MonthlyApplications []MonthlyApplication `json:"monthlyApplications"`
}

// Stats computes the caller-scoped status counts and the trailing monthly
// application volume.
func (s *Service) Stats(ctx context.Context, caller models.Caller) (*StatsResult, error) {
	counts, err := s.repo.CountByStatus(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	buckets, err := s.repo.MonthlyCounts(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	return &StatsResult{
		DefaultStats:        buildDefaultStats(counts),
		MonthlyApplications: monthlySeries(buckets, monthlyWindow),
	}, nil
}

func buildDefaultStats(counts map[models.JobStatus]int64) DefaultStats {
	return DefaultStats{
		Applied:            counts[models.StatusApplied],
		UnderConsideration: counts[models.StatusUnderConsideration],
		Interview:          counts[models.StatusInterview],
		Pending:            counts[models.StatusPending],
		Declined:           counts[models.StatusDeclined],
	}
}

// monthlySeries keeps the max most recent buckets and returns them oldest
// first. Months with no jobs are never fabricated.
func monthlySeries(buckets []models.MonthCount, max int) []MonthlyApplication {
	sorted := make([]models.MonthCount, len(buckets))
	copy(sorted, buckets)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].Month > sorted[j].Month
	})

	if len(sorted) > max {
		sorted = sorted[:max]
	}

	out := make([]MonthlyApplication, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		out = append(out, MonthlyApplication{
			Date:  formatMonth(sorted[i].Year, sorted[i].Month),
			Count: sorted[i].Count,
		})
	}

	return out
}

// formatMonth renders a (year, month) bucket as e.g. "Jan 2024".
func formatMonth(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
