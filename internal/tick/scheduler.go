package tick

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler fires RunTick on a fixed interval. Runs never overlap: a
// tick still in flight when the interval elapses skips that beat.
type Scheduler struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func NewScheduler(service *Service, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	s.logger.Info("Tick scheduler started",
		"component", "tick_scheduler",
		"interval", s.interval.String())

	go s.loop(s.stop, s.done)
}

// Stop halts the scheduler and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
	s.logger.Info("Tick scheduler stopped", "component", "tick_scheduler")
}

func (s *Scheduler) loop(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			if _, err := s.service.RunTick(ctx); err != nil {
				s.logger.Error("Scheduled tick failed",
					"component", "tick_scheduler",
					"error", err)
			}
			cancel()
		}
	}
}
