package handle_resources

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/KincaidYang/whoisparser/config"
	"github.com/KincaidYang/whoisparser/logger"
	"github.com/KincaidYang/whoisparser/metrics"
	"github.com/KincaidYang/whoisparser/server_lists"
	"github.com/KincaidYang/whoisparser/utils"
	"github.com/KincaidYang/whoisparser/whois_tools"
)

// lookupFunc fetches the raw WHOIS answer; replaced in tests.
var lookupFunc = whois_tools.Lookup

// HandleDomain looks up a domain, interprets the answer and writes the
// result as JSON. Results are cached by registrable domain.
func HandleDomain(ctx context.Context, w http.ResponseWriter, resource string) {
	log := logger.Module("domain")

	domain, tld, err := utils.NormalizeDomain(resource)
	if err != nil {
		utils.HandleHTTPError(w, utils.ErrorTypeBadRequest, "Invalid domain name: "+resource)
		return
	}

	key := utils.RecordCacheKey(domain)
	if config.CacheManager != nil {
		cacheResult, err := utils.GetFromCache(ctx, config.CacheManager, key)
		if err != nil {
			log.Warnw("cache read failed", "key", key, "error", err)
		} else if cacheResult.Found {
			utils.HandleCacheResponse(w, cacheResult.Data, "application/json")
			return
		}
	}

	templates, ok := server_lists.ServersFor(tld)
	if !ok {
		utils.HandleHTTPError(w, utils.ErrorTypeNotFound, "No WHOIS server known for TLD: "+tld)
		return
	}

	start := time.Now()
	lookup, err := lookupFunc(ctx, domain, templates, config.WhoisTimeout)
	if err != nil {
		metrics.LookupDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		log.Warnw("whois lookup failed", "domain", domain, "error", err)
		utils.HandleQueryError(w, err)
		return
	}
	metrics.LookupDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	result := whois_tools.NewWhoIsResult(lookup.Raw, whois_tools.MatchPatterns(lookup.Raw), domain, templates)
	metrics.ObserveVerdict(result.Verdict().String(), result.Tier())

	body, err := json.Marshal(result)
	if err != nil {
		utils.HandleInternalError(w, err)
		return
	}

	// a throttled or undecided answer says nothing about the domain
	if config.CacheManager != nil && result.Verdict() != whois_tools.RateLimited && result.Verdict() != whois_tools.Unknown {
		if err := utils.SetToCache(ctx, config.CacheManager, key, body, config.CacheExpiration); err != nil {
			log.Warnw("cache write failed", "key", key, "error", err)
		}
	}

	utils.HandleCacheResponse(w, string(body), "application/json")
}
