package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// jobTimeout bounds a single janitor run.
const jobTimeout = time.Minute

// Janitor runs PurgeExpired on a cron schedule.
type Janitor struct {
	cron *cron.Cron
	svc  ports.MaintenanceService
	log  logrus.FieldLogger
}

// NewJanitor validates spec (standard cron or descriptors such as "@every 10m").
func NewJanitor(svc ports.MaintenanceService, spec string, log logrus.FieldLogger) (*Janitor, error) {
	j := &Janitor{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		svc:  svc,
		log:  log,
	}
	if _, err := j.cron.AddFunc(spec, j.run); err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", spec, err)
	}
	return j, nil
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := j.svc.PurgeExpired(ctx); err != nil {
		j.log.WithError(err).Error("janitor run failed")
	}
}

// Start runs the scheduler in its own goroutine.
func (j *Janitor) Start() {
	j.cron.Start()
	j.log.Info("janitor started")
}

// Stop stops scheduling and waits for a running job or ctx.
func (j *Janitor) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}
