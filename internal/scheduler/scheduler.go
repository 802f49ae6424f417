package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/krishimitra/farm-weather/internal/weather"
)

// Scheduler periodically re-fetches the most recent query so the dashboard
// shows reasonably fresh data without user interaction.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	interval  time.Duration
}

// New creates a Scheduler. An interval of 0 disables it.
func New(service *weather.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		bundle, err := s.service.RefreshLatest(ctx)
		switch {
		case err != nil:
			log.Printf("scheduler: refresh failed: %v", err)
		case bundle == nil:
			log.Println("scheduler: no query to refresh yet")
		default:
			log.Printf("scheduler: refreshed %s", bundle.Query.Key())
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
