package jobs

import (
	"log"
	"time"

	"rewardsbot/internal/services"
)

// StatsJob periodically logs aggregate account totals.
type StatsJob struct {
	service *services.StatsService
	done    chan struct{}
}

// NewStatsJob creates a new StatsJob
func NewStatsJob(service *services.StatsService) *StatsJob {
	return &StatsJob{
		service: service,
		done:    make(chan struct{}),
	}
}

// Start begins the periodic stats logging job
func (j *StatsJob) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := j.service.Collect()
				log.Printf("Stats: %d accounts (%d verified), total balance %d, total referrals %d",
					stats.TotalAccounts, stats.VerifiedAccounts, stats.TotalBalance, stats.TotalReferrals)
			case <-j.done:
				return
			}
		}
	}()
}

// Stop halts the job.
func (j *StatsJob) Stop() {
	close(j.done)
}
