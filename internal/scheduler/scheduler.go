package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/solar-yield-simulation/internal/solar"
)

// Scheduler periodically samples the live yield for configured locations,
// emulating a telemetry feed pushing into the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *solar.Service
	locations []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, service *solar.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Info().Msg("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = solar.Step
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		log.Debug().Msg("scheduler: running yield sampling job")

		var wg sync.WaitGroup
		for _, loc := range s.locations {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := s.service.SampleAndStore(ctx, loc); err != nil {
					log.Error().Err(err).Str("location", loc).Msg("scheduler: sampling failed")
				}
			}()
		}
		wg.Wait()
		log.Debug().Msg("scheduler: completed yield sampling job")
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
