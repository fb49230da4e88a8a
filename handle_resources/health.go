package handle_resources

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/KincaidYang/whoisparser/config"
	"github.com/KincaidYang/whoisparser/utils"
	"github.com/KincaidYang/whoisparser/whois_tools"
)

// startTime records the server start time for uptime calculation
var startTime = time.Now()

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents a single health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func isRedisHealthy() bool {
	if config.CacheManager == nil {
		return false
	}
	if fc, ok := config.CacheManager.(*utils.FallbackCache); ok {
		return fc.IsPrimaryHealthy()
	}
	return config.CacheManager.IsHealthy()
}

func getCacheCheck() (Check, bool) {
	if config.CacheManager == nil {
		return Check{Status: "fail", Message: "not initialized"}, false
	}
	if isRedisHealthy() {
		return Check{Status: "ok", Message: "redis"}, true
	}
	return Check{Status: "ok", Message: "memory"}, true
}

func getCapacityCheck() Check {
	currentLoad := len(config.ConcurrencyLimiter)
	if config.RateLimit > 0 && currentLoad >= config.RateLimit {
		return Check{Status: "warning", Message: fmt.Sprintf("at limit (%d/%d)", currentLoad, config.RateLimit)}
	}
	return Check{Status: "ok", Message: fmt.Sprintf("%d/%d", currentLoad, config.RateLimit)}
}

// engineCheck runs the classifier over a canned not-found answer.
func engineCheck() Check {
	if v := whois_tools.Classify("No match for \"HEALTH-CHECK.COM\"."); v != whois_tools.Unregistered {
		return Check{Status: "fail", Message: "classifier returned " + v.String()}
	}
	return Check{Status: "ok", Message: fmt.Sprintf("%d tiers", len(whois_tools.TierNames()))}
}

// HandleHealth always answers 200 while the process is up.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	cacheCheck, _ := getCacheCheck()

	utils.WriteJSON(w, http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Checks: map[string]Check{
			"cache": cacheCheck,
		},
	})
}

// HandleReady answers 503 when the cache is missing, Redis is required but
// down, or the engine self-check fails.
func HandleReady(w http.ResponseWriter, r *http.Request) {
	httpStatus := http.StatusOK
	overallStatus := "ok"

	cacheCheck, cacheOk := getCacheCheck()
	if config.RequireRedis && !isRedisHealthy() {
		cacheCheck = Check{Status: "fail", Message: "redis required but unavailable"}
		cacheOk = false
	}

	engine := engineCheck()
	if !cacheOk || engine.Status != "ok" {
		overallStatus = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, httpStatus, HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Checks: map[string]Check{
			"cache":    cacheCheck,
			"capacity": getCapacityCheck(),
			"engine":   engine,
		},
	})
}

// RuntimeInfo represents runtime information
type RuntimeInfo struct {
	Version      string   `json:"version"`
	BuildTime    string   `json:"buildTime,omitempty"`
	GitCommit    string   `json:"gitCommit,omitempty"`
	GoVersion    string   `json:"goVersion"`
	Uptime       string   `json:"uptime"`
	NumGoroutine int      `json:"numGoroutine"`
	NumCPU       int      `json:"numCPU"`
	Tiers        []string `json:"tiers"`
}

// HandleInfo handles the /info endpoint
func HandleInfo(w http.ResponseWriter, r *http.Request) {
	info := RuntimeInfo{
		Version:      config.Version,
		GoVersion:    runtime.Version(),
		Uptime:       time.Since(startTime).Round(time.Second).String(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		Tiers:        whois_tools.TierNames(),
	}
	if config.BuildTime != "unknown" {
		info.BuildTime = config.BuildTime
	}
	if config.GitCommit != "unknown" {
		info.GitCommit = config.GitCommit
	}

	utils.WriteJSON(w, http.StatusOK, info)
}
