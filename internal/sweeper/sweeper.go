// Package sweeper runs the periodic background pass that force-closes
// abandoned clock sessions.
package sweeper

import (
	"log/slog"
	"sync"
	"time"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/shifts"
)

type Sweeper struct {
	service  *shifts.Service
	interval time.Duration

	done chan struct{}
	wg   sync.WaitGroup
}

func New(service *shifts.Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. Each tick runs a full pass to completion;
// failures inside a pass are logged by the service and never stop the loop.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		slog.Info("abandoned-session sweeper started", "interval", s.interval)

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				closed := s.service.Sweep()
				if closed > 0 {
					slog.Info("sweep pass finished", "closedSessions", closed)
				}
			}
		}
	}()
}

// Stop terminates the loop and waits for an in-flight pass to finish.
func (s *Sweeper) Stop() {
	close(s.done)
	s.wg.Wait()
	slog.Info("abandoned-session sweeper stopped")
}
