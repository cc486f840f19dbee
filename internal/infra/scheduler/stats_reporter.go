package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"scan_review_notifier/internal/infra/metrics"
)

// StatsReporter periodically logs the delivery counter snapshot so that
// suppression rates and flag-commit failures show up in the log stream
// without any external metrics backend.
type StatsReporter struct {
	cronEngine *cron.Cron
	counters   *metrics.Counters
	logger     *logrus.Logger
	cronSpec   string
}

func NewStatsReporter(counters *metrics.Counters, logger *logrus.Logger, cronSpec string) *StatsReporter {
	return &StatsReporter{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		counters:   counters,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *StatsReporter) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.WithFields(s.counters.Snapshot().Fields()).Info("delivery counters")
	})
	if err != nil {
		return err
	}
	s.cronEngine.Start()
	s.logger.Infof("Stats reporter started with spec %q.", s.cronSpec)
	return nil
}

func (s *StatsReporter) Stop() {
	ctx := s.cronEngine.Stop() // Stops scheduling, waits for a running job.
	<-ctx.Done()
	// Final snapshot so short-lived runs still leave a trace.
	s.logger.WithFields(s.counters.Snapshot().Fields()).Info("delivery counters (final)")
}
