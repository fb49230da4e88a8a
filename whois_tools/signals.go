package whois_tools

import (
	"regexp"
	"strings"
)

var (
	reLastUpdate = regexp.MustCompile(`(?i)(?:>>>?)?\s*(?P<information>Last\s*Update\s*(?:[a-z0-9\s]+)?(?:\s+Whois\s*)?(?:\s+Database)?)\s*:\s*(?P<date_update>(?:[0-9]+[0-9TZ\-:\s]+)?)`)
	reIcannURL   = regexp.MustCompile(`(?i)URL\s+of(?:\s+the)?\s+ICANN[^:]+:\s*(?P<url>https?://\S+)`)
	reWhoisHost  = regexp.MustCompile(`(?i)Whois\s*Server\s*:([^\n]+)`)

	reDailyLimit = regexp.MustCompile(`(?i)passed\s+(?:the)?\s+daily\s+limit|temporarily\s+denied`)
	reQuotaLimit = regexp.MustCompile(`(?i)(?:Resource|Whois)\s+Limit|exceeded\s(.+)?limit|limit\s+exceed|allow(?:ed|ing)?\s+quer(?:ies|y)\s+exceeded`)
)

func prepareSignalText(data string) string {
	return strings.NewReplacer("\r", "", "\t", " ").Replace(strings.TrimSpace(data))
}

// ExtractLastDatabaseUpdate finds the "Last update of whois database: <date>"
// line and returns it as "<label>: <date>" with whitespace runs squashed.
func ExtractLastDatabaseUpdate(data string) (string, bool) {
	m := reLastUpdate.FindStringSubmatch(prepareSignalText(data))
	if m == nil {
		return "", false
	}
	info := m[reLastUpdate.SubexpIndex("information")]
	date := m[reLastUpdate.SubexpIndex("date_update")]
	if date == "" {
		return "", false
	}
	return strings.TrimSpace(squashWhitespace(strings.TrimSpace(info + ": " + date))), true
}

// ExtractIcannReportURL returns the URL announced by an
// "URL of the ICANN ... :" line.
func ExtractIcannReportURL(data string) (string, bool) {
	m := reIcannURL.FindStringSubmatch(prepareSignalText(data))
	if m == nil {
		return "", false
	}
	url := strings.TrimSpace(m[reIcannURL.SubexpIndex("url")])
	return url, url != ""
}

// ExtractWhoisServerHost returns the host of the first "Whois Server:" line.
func ExtractWhoisServerHost(data string) (string, bool) {
	if strings.TrimSpace(data) == "" {
		return "", false
	}
	m := reWhoisHost.FindStringSubmatch(data)
	if m == nil {
		return "", false
	}
	host := strings.TrimSpace(m[1])
	return host, host != ""
}

// HasContainLimitedResultData reports whether the response is a throttling
// notice. The raw text is checked for daily-limit phrasing and the cleaned
// text for quota phrasing, because some notices are themselves boilerplate.
func HasContainLimitedResultData(data string) bool {
	if reDailyLimit.MatchString(data) {
		return true
	}
	clean := CleanUnwantedWhoIsResult(data)
	return clean != "" && reQuotaLimit.MatchString(clean)
}
