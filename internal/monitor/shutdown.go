package monitor

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Shutdown is a one-shot stop flag. It can only go from false to true.
type Shutdown struct {
	requested atomic.Bool
	once      sync.Once
	done      chan struct{}
}

// NewShutdown creates an unset shutdown flag
func NewShutdown() *Shutdown {
	return &Shutdown{done: make(chan struct{})}
}

// Request sets the flag. Calling it again has no effect.
func (s *Shutdown) Request() {
	s.once.Do(func() {
		s.requested.Store(true)
		close(s.done)
	})
}

// Requested reports whether shutdown has been asked for
func (s *Shutdown) Requested() bool {
	return s.requested.Load()
}

// Done is closed once shutdown is requested
func (s *Shutdown) Done() <-chan struct{} {
	return s.done
}

// WatchSignals requests shutdown on the first of sigs. The returned func stops watching.
func (s *Shutdown) WatchSignals(logger *zap.Logger, sigs ...os.Signal) (stop func()) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	quit := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("signal_received", zap.String("signal", sig.String()))
			s.Request()
		case <-quit:
		}
	}()

	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() {
			signal.Stop(sigChan)
			close(quit)
		})
	}
}
