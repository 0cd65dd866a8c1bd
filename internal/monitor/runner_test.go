package monitor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/juststeveking/uptimed/internal/config"
	"github.com/juststeveking/uptimed/internal/targets"
)

// --- fakes ---

type fakeSource struct {
	urls  []string
	err   error
	loads int
}

func (f *fakeSource) Load() ([]string, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.urls...), nil
}

type fakeProber struct {
	status map[string]int // default 200
	probed []string
}

func (f *fakeProber) Probe(ctx context.Context, url string, headers []config.Header) Outcome {
	f.probed = append(f.probed, url)
	code, ok := f.status[url]
	if !ok {
		code = http.StatusOK
	}
	return Outcome{URL: url, StatusCode: code}
}

type alert struct {
	target string
	reason string
}

type fakeSink struct {
	alerts []alert
	failOn string
}

func (f *fakeSink) Notify(ctx context.Context, target, reason string) error {
	f.alerts = append(f.alerts, alert{target, reason})
	if target == f.failOn {
		return errors.New("display unavailable")
	}
	return nil
}

func newTestRunner(t *testing.T, src TargetSource, p Prober, sink AlertSink, interval time.Duration) (*Runner, *[]time.Duration) {
	t.Helper()
	r := NewRunner(src, p, sink, nil, interval, zaptest.NewLogger(t))
	var sleeps []time.Duration
	r.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return r, &sleeps
}

func TestRunScanPacesEveryTarget(t *testing.T) {
	src := &fakeSource{urls: []string{"a", "b", "c", "d"}}
	prober := &fakeProber{status: map[string]int{"b": 500, "c": 503}}
	sink := &fakeSink{}

	r, sleeps := newTestRunner(t, src, prober, sink, 2*time.Second)

	report, err := r.RunScan(context.Background())
	if err != nil {
		t.Fatalf("RunScan failed: %v", err)
	}

	if !reflect.DeepEqual(prober.probed, src.urls) {
		t.Errorf("Expected probes %q in order, got %q", src.urls, prober.probed)
	}
	want := []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}
	if !reflect.DeepEqual(*sleeps, want) {
		t.Errorf("Expected N-1 sleeps %v, got %v", want, *sleeps)
	}
	if report.Probed != 4 || report.Failed != 2 || report.Targets != 4 {
		t.Errorf("Unexpected report %+v", report)
	}
}

func TestRunScanNoPacingWhenIntervalZero(t *testing.T) {
	src := &fakeSource{urls: []string{"a", "b", "c"}}
	r, sleeps := newTestRunner(t, src, &fakeProber{}, &fakeSink{}, 0)

	if _, err := r.RunScan(context.Background()); err != nil {
		t.Fatalf("RunScan failed: %v", err)
	}
	if len(*sleeps) != 0 {
		t.Errorf("Expected no sleeps, got %v", *sleeps)
	}
}

func TestRunScanAlerts(t *testing.T) {
	src := &fakeSource{urls: []string{"https://up.example", "https://down.example"}}
	prober := &fakeProber{status: map[string]int{"https://down.example": http.StatusServiceUnavailable}}
	sink := &fakeSink{}

	r, _ := newTestRunner(t, src, prober, sink, 0)

	var observed []Outcome
	r.Observer = func(o Outcome) { observed = append(observed, o) }

	if _, err := r.RunScan(context.Background()); err != nil {
		t.Fatalf("RunScan failed: %v", err)
	}

	if len(sink.alerts) != 1 {
		t.Fatalf("Expected exactly one alert, got %d", len(sink.alerts))
	}
	if sink.alerts[0].target != "https://down.example" {
		t.Errorf("Alert for wrong target %q", sink.alerts[0].target)
	}
	if !strings.Contains(sink.alerts[0].reason, "503") {
		t.Errorf("Expected reason to contain 503, got %q", sink.alerts[0].reason)
	}
	if len(observed) != 2 || !observed[0].OK() || observed[1].OK() {
		t.Errorf("Observer saw unexpected outcomes %+v", observed)
	}
}

func TestRunScanSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("permission denied")}
	prober := &fakeProber{}
	sink := &fakeSink{}

	r, _ := newTestRunner(t, src, prober, sink, time.Second)

	_, err := r.RunScan(context.Background())
	if !errors.Is(err, ErrTargetSource) {
		t.Fatalf("Expected ErrTargetSource, got %v", err)
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Errorf("Expected *SourceError, got %T", err)
	}
	if len(prober.probed) != 0 || len(sink.alerts) != 0 {
		t.Errorf("Expected no probes or alerts, got %d probes and %d alerts", len(prober.probed), len(sink.alerts))
	}
}

func TestRunScanSinkFailureAbortsScan(t *testing.T) {
	src := &fakeSource{urls: []string{"t1", "t2", "t3", "t4", "t5"}}
	prober := &fakeProber{status: map[string]int{"t2": 500, "t4": 500}}
	sink := &fakeSink{failOn: "t2"}

	r, sleeps := newTestRunner(t, src, prober, sink, time.Second)

	report, err := r.RunScan(context.Background())
	if !errors.Is(err, ErrAlertSink) {
		t.Fatalf("Expected ErrAlertSink, got %v", err)
	}

	var alertErr *AlertError
	if !errors.As(err, &alertErr) {
		t.Fatalf("Expected *AlertError, got %T", err)
	}
	if alertErr.URL != "t2" || alertErr.Skipped != 3 {
		t.Errorf("Unexpected alert error %+v", alertErr)
	}
	if !reflect.DeepEqual(prober.probed, []string{"t1", "t2"}) {
		t.Errorf("Expected only t1 and t2 to be probed, got %q", prober.probed)
	}
	if len(*sleeps) != 1 {
		t.Errorf("Expected one pacing sleep between t1 and t2, got %d", len(*sleeps))
	}
	if report.Probed != 2 {
		t.Errorf("Expected report to count 2 probes, got %d", report.Probed)
	}
}

func TestRunScanRereadsSource(t *testing.T) {
	src := &fakeSource{urls: []string{"a"}}
	prober := &fakeProber{}
	r, _ := newTestRunner(t, src, prober, &fakeSink{}, 0)

	if _, err := r.RunScan(context.Background()); err != nil {
		t.Fatal(err)
	}
	src.urls = []string{"a", "b"}
	if _, err := r.RunScan(context.Background()); err != nil {
		t.Fatal(err)
	}

	if src.loads != 2 {
		t.Errorf("Expected the source to be read once per scan, got %d reads", src.loads)
	}
	if !reflect.DeepEqual(prober.probed, []string{"a", "a", "b"}) {
		t.Errorf("Expected edits to apply on the next scan, got %q", prober.probed)
	}
}

type recordingSink struct {
	alerts []alert
}

func (r *recordingSink) Notify(ctx context.Context, target, reason string) error {
	r.alerts = append(r.alerts, alert{target, reason})
	return nil
}

func TestRunScanAgainstHTTPServer(t *testing.T) {
	var auth [][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Values("Authorization"))
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "targets")
	if err := os.WriteFile(path, []byte(ts.URL+"/up\n"+ts.URL+"/down\n"), 0644); err != nil {
		t.Fatal(err)
	}

	prober := NewHTTPProber()
	defer prober.Close()
	sink := &recordingSink{}
	headers := []config.Header{
		{Name: "Authorization", Value: "Bearer X"},
		{Name: "Authorization", Value: "Bearer Y"},
	}

	r := NewRunner(targets.NewFile(path), prober, sink, headers, 0, zaptest.NewLogger(t))
	report, err := r.RunScan(context.Background())
	if err != nil {
		t.Fatalf("RunScan failed: %v", err)
	}

	if report.Probed != 2 || report.Failed != 1 {
		t.Errorf("Unexpected report %+v", report)
	}
	if len(sink.alerts) != 1 || sink.alerts[0].target != ts.URL+"/down" || !strings.Contains(sink.alerts[0].reason, "503") {
		t.Errorf("Unexpected alerts %+v", sink.alerts)
	}
	for i, got := range auth {
		if !reflect.DeepEqual(got, []string{"Bearer X", "Bearer Y"}) {
			t.Errorf("request %d sent Authorization %q", i+1, got)
		}
	}

	// A missing target file fails the scan before any alert
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	sink.alerts = nil
	if _, err := r.RunScan(context.Background()); !errors.Is(err, ErrTargetSource) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected source error wrapping os.ErrNotExist, got %v", err)
	}
	if len(sink.alerts) != 0 {
		t.Errorf("Expected no alerts when the source is missing, got %d", len(sink.alerts))
	}
}
