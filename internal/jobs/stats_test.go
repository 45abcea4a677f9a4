package jobs

import (
	"testing"

	"github.com/jobdeck/jobdeck/pkg/models"
)

func TestMonthlySeries_TrimsAndReverses(t *testing.T) {
	// eight buckets spanning a year boundary, unsorted on purpose
	buckets := []models.MonthCount{
		{Year: 2024, Month: 2, Count: 4},
		{Year: 2023, Month: 11, Count: 1},
		{Year: 2024, Month: 5, Count: 2},
		{Year: 2023, Month: 12, Count: 3},
		{Year: 2024, Month: 1, Count: 7},
		{Year: 2024, Month: 4, Count: 5},
		{Year: 2023, Month: 9, Count: 9},
		{Year: 2024, Month: 3, Count: 6},
	}

	got := monthlySeries(buckets, 6)
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}

	// the six most recent buckets, oldest first
	want := []MonthlyApplication{
		{Date: "Dec 2023", Count: 3},
		{Date: "Jan 2024", Count: 7},
		{Date: "Feb 2024", Count: 4},
		{Date: "Mar 2024", Count: 6},
		{Date: "Apr 2024", Count: 5},
		{Date: "May 2024", Count: 2},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("series[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMonthlySeries_FewerThanWindow(t *testing.T) {
	buckets := []models.MonthCount{
		{Year: 2024, Month: 6, Count: 1},
		{Year: 2024, Month: 3, Count: 2},
	}

	got := monthlySeries(buckets, 6)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2; empty months must not be fabricated", len(got))
	}
	if got[0].Date != "Mar 2024" || got[1].Date != "Jun 2024" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestMonthlySeries_Empty(t *testing.T) {
	if got := monthlySeries(nil, 6); len(got) != 0 {
		t.Fatalf("expected empty series, got %+v", got)
	}
}

func TestBuildDefaultStats_ZeroFills(t *testing.T) {
	ds := buildDefaultStats(map[models.JobStatus]int64{
		models.StatusInterview: 3,
	})
	if ds.Interview != 3 {
		t.Fatalf("interview = %d, want 3", ds.Interview)
	}
	if ds.Applied != 0 || ds.UnderConsideration != 0 || ds.Pending != 0 || ds.Declined != 0 {
		t.Fatalf("expected zero fill, got %+v", ds)
	}
}

func TestFormatMonth(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2024, 1, "Jan 2024"},
		{2023, 12, "Dec 2023"},
		{2019, 6, "Jun 2019"},
	}
	for _, tt := range tests {
		if got := formatMonth(tt.year, tt.month); got != tt.want {
			t.Fatalf("formatMonth(%d, %d) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}
