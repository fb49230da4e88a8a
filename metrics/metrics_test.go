package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	return w.Body.String()
}

func TestObserveVerdict(t *testing.T) {
	ObserveVerdict("registered", "contact-data")

	want := `whois_verdicts_total{tier="contact-data",verdict="registered"}`
	if body := scrape(t); !strings.Contains(body, want) {
		t.Errorf("metrics output lacks %s", want)
	}
}

func TestHandler(t *testing.T) {
	CacheRequests.WithLabelValues("hit").Inc()
	LookupDuration.WithLabelValues("ok").Observe(0.1)

	body := scrape(t)
	for _, name := range []string{"whois_cache_requests_total", "whois_lookup_duration_seconds", "whois_lookups_in_flight"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output lacks %s", name)
		}
	}
}
