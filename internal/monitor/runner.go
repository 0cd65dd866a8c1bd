package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/juststeveking/uptimed/internal/config"
)

// TargetSource supplies the targets for one scan
type TargetSource interface {
	Load() ([]string, error)
}

// AlertSink surfaces a failed target to the operator
type AlertSink interface {
	Notify(ctx context.Context, target, reason string) error
}

// Report summarises a finished or aborted scan
type Report struct {
	Started  time.Time
	Finished time.Time
	Targets  int
	Probed   int
	Failed   int
}

// Runner performs one sequential pass over the target list
type Runner struct {
	source          TargetSource
	prober          Prober
	sink            AlertSink
	headers         []config.Header
	requestInterval time.Duration
	logger          *zap.Logger

	// Observer, when set, receives every outcome as it is classified
	Observer func(Outcome)

	sleep func(time.Duration)
	now   func() time.Time
}

// NewRunner creates a scan runner
func NewRunner(source TargetSource, prober Prober, sink AlertSink, headers []config.Header, requestInterval time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		source:          source,
		prober:          prober,
		sink:            sink,
		headers:         headers,
		requestInterval: requestInterval,
		logger:          logger,
		sleep:           time.Sleep,
		now:             time.Now,
	}
}

// RunScan reads the target list once and probes every target in order.
// Target failures become alerts; only a source or sink failure ends the scan early.
func (r *Runner) RunScan(ctx context.Context) (Report, error) {
	report := Report{Started: r.now()}

	urls, err := r.source.Load()
	if err != nil {
		report.Finished = r.now()
		return report, &SourceError{Err: err}
	}
	report.Targets = len(urls)

	r.logger.Info("scan_started", zap.Int("targets", len(urls)))

	for i, url := range urls {
		outcome := r.prober.Probe(ctx, url, r.headers)
		report.Probed++

		if r.Observer != nil {
			r.Observer(outcome)
		}

		if outcome.OK() {
			r.logger.Debug("target_up",
				zap.String("url", url),
				zap.Int("status", outcome.StatusCode),
				zap.Duration("latency", outcome.ResponseTime))
		} else {
			report.Failed++
			r.logger.Warn("target_down",
				zap.String("url", url),
				zap.String("reason", outcome.Reason()),
				zap.Error(outcome.Err))

			if err := r.sink.Notify(ctx, url, outcome.Reason()); err != nil {
				report.Finished = r.now()
				return report, &AlertError{URL: url, Skipped: len(urls) - i - 1, Err: err}
			}
		}

		if i < len(urls)-1 && r.requestInterval > 0 {
			r.sleep(r.requestInterval)
		}
	}

	report.Finished = r.now()
	r.logger.Info("scan_finished",
		zap.Int("probed", report.Probed),
		zap.Int("failed", report.Failed),
		zap.Duration("took", report.Finished.Sub(report.Started)))

	return report, nil
}
