package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	apphub "github.com/bryanwahyu/cyberlens-console/internal/application/hub"
)

// Scheduler refresh snapshot overview threat hub secara periodik supaya
// dashboard selalu dapat data hangat tanpa nunggu backend.
type Scheduler struct {
	cron   *cron.Cron
	hubSvc *apphub.Service
}

func New(hubSvc *apphub.Service, refreshSpec string) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, hubSvc: hubSvc}

	if _, err := c.AddFunc(refreshSpec, s.refreshOverview); err != nil {
		return nil, err
	}
	log.Printf("hub overview refresh scheduled: %s", refreshSpec)
	return s, nil
}

func (s *Scheduler) refreshOverview() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.hubSvc.RefreshOverview(ctx); err != nil {
		log.Printf("hub overview refresh error: %v", err)
	}
}

// Start non-blocking
func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		log.Println("scheduler stop timed out, jobs may still be running")
	}
}
