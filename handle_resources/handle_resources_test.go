package handle_resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KincaidYang/whoisparser/config"
	"github.com/KincaidYang/whoisparser/utils"
	"github.com/KincaidYang/whoisparser/whois_tools"
)

const registeredResponse = `Domain Name: EXAMPLE.COM
Registry Domain ID: 2336799_DOMAIN_COM-VRSN
Registrar WHOIS Server: whois.iana.org
Registrar: RESERVED-Internet Assigned Numbers Authority
Name Server: A.IANA-SERVERS.NET
Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited`

// stubLookup replaces the port-43 lookup and counts calls.
func stubLookup(t *testing.T, raw string, err error) *int {
	t.Helper()
	calls := 0
	original := lookupFunc
	lookupFunc = func(ctx context.Context, domain string, templates []string, timeout time.Duration) (whois_tools.LookupResult, error) {
		calls++
		if err != nil {
			return whois_tools.LookupResult{}, err
		}
		return whois_tools.LookupResult{Raw: raw, Server: templates[0]}, nil
	}
	t.Cleanup(func() { lookupFunc = original })
	return &calls
}

func useMemoryCache(t *testing.T) {
	t.Helper()
	primary := utils.NewMemoryCache(100, time.Minute)
	fallback := utils.NewMemoryCache(100, time.Minute)
	previous, previousExpiration := config.CacheManager, config.CacheExpiration
	config.CacheManager = utils.NewFallbackCache(primary, fallback)
	config.CacheExpiration = time.Minute
	t.Cleanup(func() {
		primary.Close()
		fallback.Close()
		config.CacheManager, config.CacheExpiration = previous, previousExpiration
	})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHandleDomain(t *testing.T) {
	useMemoryCache(t)
	calls := stubLookup(t, registeredResponse, nil)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		HandleDomain(context.Background(), w, "www.Example.com")

		if w.Code != http.StatusOK {
			t.Fatalf("HandleDomain status = %d; body %s", w.Code, w.Body.String())
		}
		body := decode(t, w)
		if body["verdict"] != "registered" || body["domain"] != "example.com" {
			t.Errorf("HandleDomain body = %v", body)
		}
	}

	if *calls != 1 {
		t.Errorf("lookup called %d times; want 1, second answer from cache", *calls)
	}
}

func TestHandleDomainSkipsCacheForRateLimit(t *testing.T) {
	useMemoryCache(t)
	calls := stubLookup(t, "You have exceeded the query limit", nil)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		HandleDomain(context.Background(), w, "example.com")
		if body := decode(t, w); body["verdict"] != "rate_limited" {
			t.Errorf("verdict = %v; want rate_limited", body["verdict"])
		}
	}

	if *calls != 2 {
		t.Errorf("lookup called %d times; want 2", *calls)
	}
}

func TestHandleDomainErrors(t *testing.T) {
	useMemoryCache(t)
	stubLookup(t, "", whois_tools.ErrEmptyResponse)

	tests := []struct {
		resource string
		wantCode int
	}{
		{"not a domain", http.StatusBadRequest},
		{"example.invalidtld", http.StatusNotFound},
		{"example.com", http.StatusBadGateway},
	}

	for _, test := range tests {
		w := httptest.NewRecorder()
		HandleDomain(context.Background(), w, test.resource)
		if w.Code != test.wantCode {
			t.Errorf("HandleDomain(%q) = %d; want %d", test.resource, w.Code, test.wantCode)
		}
	}
}

func TestHandleInterpret(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/interpret?domain=Example.com&server=whois.%7B%7Bdomain%7D%7D.test", strings.NewReader(registeredResponse))
	w := httptest.NewRecorder()
	HandleInterpret(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("HandleInterpret status = %d", w.Code)
	}
	body := decode(t, w)
	if body["verdict"] != "registered" || body["tier"] != "contact-data" || body["domain"] != "example.com" {
		t.Errorf("HandleInterpret body = %v", body)
	}

	record := body["record"].(map[string]any)
	url := record["URL"].(map[string]any)
	servers := url["Whois Server"].([]any)
	found := false
	for _, s := range servers {
		if s == "whois.example.com.test" {
			found = true
		}
	}
	if !found {
		t.Errorf("Whois Server = %v; want whois.example.com.test", servers)
	}
}

func TestHandleInterpretMethod(t *testing.T) {
	w := httptest.NewRecorder()
	HandleInterpret(w, httptest.NewRequest(http.MethodGet, "/interpret", nil))

	if w.Code != http.StatusMethodNotAllowed || w.Header().Get("Allow") != http.MethodPost {
		t.Errorf("HandleInterpret(GET) = %d, Allow %q", w.Code, w.Header().Get("Allow"))
	}
}

func TestHandleInterpretTooLarge(t *testing.T) {
	body := strings.Repeat("a", maxInterpretBody+1)
	w := httptest.NewRecorder()
	HandleInterpret(w, httptest.NewRequest(http.MethodPost, "/interpret", strings.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("HandleInterpret(large) = %d; want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	useMemoryCache(t)
	w := httptest.NewRecorder()
	HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK || decode(t, w)["status"] != "ok" {
		t.Errorf("HandleHealth = %d %s", w.Code, w.Body.String())
	}
}

func TestHandleReady(t *testing.T) {
	previous := config.CacheManager
	config.CacheManager = nil
	w := httptest.NewRecorder()
	HandleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	config.CacheManager = previous

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("HandleReady without cache = %d; want 503", w.Code)
	}

	useMemoryCache(t)
	w = httptest.NewRecorder()
	HandleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("HandleReady = %d; body %s", w.Code, w.Body.String())
	}
	checks := decode(t, w)["checks"].(map[string]any)
	engine := checks["engine"].(map[string]any)
	if engine["status"] != "ok" {
		t.Errorf("engine check = %v", engine)
	}
}

func TestHandleInfo(t *testing.T) {
	w := httptest.NewRecorder()
	HandleInfo(w, httptest.NewRequest(http.MethodGet, "/info", nil))

	var info RuntimeInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.GoVersion == "" || len(info.Tiers) != len(whois_tools.TierNames()) {
		t.Errorf("HandleInfo = %+v", info)
	}
}
