package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often an idle scheduler re-checks due and shutdown status
const DefaultPollInterval = 10 * time.Millisecond

// Scanner runs one complete scan
type Scanner interface {
	RunScan(ctx context.Context) (Report, error)
}

// State is the scheduler's position in its loop
type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateStopped  State = "stopped"
)

// Scheduler starts a new scan whenever scanInterval has passed since the previous scan started
type Scheduler struct {
	scanner      Scanner
	scanInterval time.Duration
	shutdown     *Shutdown
	logger       *zap.Logger

	// PollInterval bounds shutdown latency while idle
	PollInterval time.Duration

	state      State
	lastStart  time.Time
	hasScanned bool // false means "never": the first scan is due immediately

	now  func() time.Time
	wait func(d time.Duration, cancel <-chan struct{})
}

// NewScheduler creates a scheduler that stops when shutdown is requested
func NewScheduler(scanner Scanner, scanInterval time.Duration, shutdown *Shutdown, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scanner:      scanner,
		scanInterval: scanInterval,
		shutdown:     shutdown,
		logger:       logger,
		PollInterval: DefaultPollInterval,
		state:        StateIdle,
		now:          time.Now,
		wait:         waitOrCancel,
	}
}

// State returns the current loop state
func (s *Scheduler) State() State {
	return s.state
}

// Run drives scans until shutdown is requested or the target source fails.
// Shutdown is honoured only between scans; a running scan always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	// Requests must not be torn down by whoever cancels ctx; shutdown goes through the flag
	scanCtx := context.WithoutCancel(ctx)

	s.logger.Info("scheduler_started", zap.Duration("scan_interval", s.scanInterval))

	for {
		if s.shutdown.Requested() {
			s.state = StateStopped
			s.logger.Info("scheduler_stopped")
			return nil
		}

		now := s.now()
		if !s.due(now) {
			s.wait(s.PollInterval, s.shutdown.Done())
			continue
		}

		s.state = StateScanning
		s.lastStart = now
		s.hasScanned = true

		report, err := s.scanner.RunScan(scanCtx)
		s.state = StateIdle

		switch {
		case err == nil:
			next, _ := s.NextScanAt()
			s.logger.Debug("next_scan", zap.Time("at", next))
		case errors.Is(err, ErrAlertSink):
			s.logger.Error("scan_aborted",
				zap.Error(err),
				zap.Int("probed", report.Probed),
				zap.Int("targets", report.Targets))
		default:
			s.state = StateStopped
			s.logger.Error("scheduler_failed", zap.Error(err))
			return err
		}
	}
}

// NextScanAt returns when the next scan becomes due, or false if none has run yet
func (s *Scheduler) NextScanAt() (time.Time, bool) {
	if !s.hasScanned {
		return time.Time{}, false
	}
	return s.lastStart.Add(s.scanInterval), true
}

func (s *Scheduler) due(now time.Time) bool {
	if !s.hasScanned {
		return true
	}
	return now.Sub(s.lastStart) >= s.scanInterval
}

func waitOrCancel(d time.Duration, cancel <-chan struct{}) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-cancel:
	}
}
