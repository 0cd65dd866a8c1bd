package monitor

import (
	"os"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestWatchSignals(t *testing.T) {
	sd := NewShutdown()
	stop := sd.WatchSignals(zaptest.NewLogger(t), syscall.SIGUSR1)
	defer stop()

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatal(err)
	}

	select {
	case <-sd.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Expected shutdown after signal")
	}
	if !sd.Requested() {
		t.Error("Expected flag to be set")
	}
}

func TestWatchSignalsStop(t *testing.T) {
	sd := NewShutdown()
	stop := sd.WatchSignals(nil, syscall.SIGUSR2)
	stop()
	stop()

	if sd.Requested() {
		t.Error("Expected stop not to request shutdown")
	}
}
