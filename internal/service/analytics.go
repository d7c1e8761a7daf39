package service

import (
	"math"
	"sort"

	"github.com/jobtrack/jobtrack-api/internal/domain"
)

// Stats is the read-side summary of a user's applications
type Stats struct {
	TotalApplications    int                 `json:"total_applications"`
	InterviewsScheduled  int                 `json:"interviews_scheduled"`
	AcceptedApplications int                 `json:"accepted_applications"`
	RejectedApplications int                 `json:"rejected_applications"`
	UpcomingInterviews   []UpcomingInterview `json:"upcoming_interviews"`
}

// UpcomingInterview is one pending interview in the stats summary
type UpcomingInterview struct {
	Company       string      `json:"company"`
	Position      string      `json:"position"`
	InterviewDate domain.Date `json:"interview_date"`
}

// Breakdown is a count with its share of the total
type Breakdown struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Analytics holds percentage breakdowns and salary averages over a
// user's applications. Every enumerated value appears, including
// zero-count ones.
type Analytics struct {
	StatusBreakdown        map[string]Breakdown `json:"status_breakdown"`
	JobTypeBreakdown       map[string]Breakdown `json:"job_type_breakdown"`
	AverageSalaryByJobType map[string]float64   `json:"average_salary_by_job_type"`
}

// ComputeStats summarizes an application set as of the given date
func ComputeStats(apps []domain.Application, today domain.Date) *Stats {
	stats := &Stats{
		TotalApplications:  len(apps),
		UpcomingInterviews: []UpcomingInterview{},
	}

	for _, app := range apps {
		switch app.Status {
		case domain.StatusInterview:
			stats.InterviewsScheduled++
			if app.InterviewDate != nil && !app.InterviewDate.Before(today) {
				stats.UpcomingInterviews = append(stats.UpcomingInterviews, UpcomingInterview{
					Company:       app.Company,
					Position:      app.Position,
					InterviewDate: *app.InterviewDate,
				})
			}
		case domain.StatusAccepted:
			stats.AcceptedApplications++
		case domain.StatusRejected:
			stats.RejectedApplications++
		}
	}

	sort.Slice(stats.UpcomingInterviews, func(i, j int) bool {
		return stats.UpcomingInterviews[i].InterviewDate.Before(stats.UpcomingInterviews[j].InterviewDate)
	})

	return stats
}

// ComputeAnalytics computes status/job-type breakdowns and per-job-type
// salary averages over an application set
func ComputeAnalytics(apps []domain.Application) *Analytics {
	// Guard the divisor so an empty set yields all-zero percentages
	total := len(apps)
	divisor := float64(total)
	if divisor < 1 {
		divisor = 1
	}

	analytics := &Analytics{
		StatusBreakdown:        make(map[string]Breakdown, len(domain.ApplicationStatuses)),
		JobTypeBreakdown:       make(map[string]Breakdown, len(domain.JobTypes)),
		AverageSalaryByJobType: make(map[string]float64, len(domain.JobTypes)),
	}

	statusCounts := map[domain.ApplicationStatus]int{}
	jobTypeCounts := map[domain.JobType]int{}
	salarySums := map[domain.JobType]int{}
	salaryCounts := map[domain.JobType]int{}

	for _, app := range apps {
		statusCounts[app.Status]++
		jobTypeCounts[app.JobType]++
		if app.Salary != nil {
			salarySums[app.JobType] += *app.Salary
			salaryCounts[app.JobType]++
		}
	}

	for _, status := range domain.ApplicationStatuses {
		count := statusCounts[status]
		analytics.StatusBreakdown[string(status)] = Breakdown{
			Count:   count,
			Percent: round2(100 * float64(count) / divisor),
		}
	}

	for _, jobType := range domain.JobTypes {
		count := jobTypeCounts[jobType]
		analytics.JobTypeBreakdown[string(jobType)] = Breakdown{
			Count:   count,
			Percent: round2(100 * float64(count) / divisor),
		}

		avg := 0.0
		if salaryCounts[jobType] > 0 {
			avg = round2(float64(salarySums[jobType]) / float64(salaryCounts[jobType]))
		}
		analytics.AverageSalaryByJobType[string(jobType)] = avg
	}

	return analytics
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
