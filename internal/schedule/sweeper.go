package schedule

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Sweeper periodically cancels pending reservations whose end has passed.
type Sweeper struct {
	cron   *cron.Cron
	source DataSource
	spec   string
}

// NewSweeper creates a sweeper running on the given cron spec
// (e.g. "@every 5m").
func NewSweeper(source DataSource, spec string) *Sweeper {
	return &Sweeper{
		cron:   cron.New(),
		source: source,
		spec:   spec,
	}
}

// Start begins the background sweep.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.WithField("schedule", s.spec).Info("Reservation sweeper started")
	return nil
}

// Stop gracefully shuts the sweeper down, waiting for a running sweep.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Reservation sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx := context.Background()

	n, err := s.source.ExpirePending(ctx, time.Now().UTC())
	if err != nil {
		log.WithError(err).Error("Failed to expire pending reservations")
		return
	}
	if n > 0 {
		log.WithField("count", n).Info("Cancelled pending reservations past their end date")
	}
}
