package monitor

import (
	"fmt"
	"net/http"
	"time"
)

// FallbackStatus is reported when a request fails before any response arrives
const FallbackStatus = http.StatusNotFound

// Outcome is the classified result of probing a single target
type Outcome struct {
	URL          string
	StatusCode   int
	Err          error // transport error, if any; informational only
	ResponseTime time.Duration
	CheckedAt    time.Time
}

// OK reports whether the target answered with a success status
func (o Outcome) OK() bool {
	return o.Err == nil && isSuccess(o.StatusCode)
}

// Reason renders the failure cause the way it is shown in alerts, e.g. "503 Service Unavailable"
func (o Outcome) Reason() string {
	if text := http.StatusText(o.StatusCode); text != "" {
		return fmt.Sprintf("%d %s", o.StatusCode, text)
	}
	return fmt.Sprintf("%d", o.StatusCode)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 400
}
