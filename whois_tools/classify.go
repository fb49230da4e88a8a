package whois_tools

import (
	"regexp"
	"slices"
	"strings"
)

// Verdict is the registration state decided for a WHOIS response.
type Verdict int

const (
	// Unknown means the response carried no usable evidence.
	Unknown Verdict = iota
	Registered
	Unregistered
	// RateLimited means the server refused to answer because of a quota.
	RateLimited
)

func (v Verdict) String() string {
	switch v {
	case Registered:
		return "registered"
	case Unregistered:
		return "unregistered"
	case RateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// MarshalText makes verdicts render as their names in JSON.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

var (
	reEmptyNotFound = regexp.MustCompile(`(?i)No\s+entries(?:\s+found)?|Not(?:hing)?\s+found`)
	reNotFoundStart = regexp.MustCompile(`(?i)^(?:No\s+match\s+for|No\s+Match|Not\s+found\s*:?|No\s*Data\s+Found|Domain\s+not\s+found|Invalid\s+query\s+or\s+domain|The\s+queried\s+object\s+does\s+not\s+exist|Th(?:is|e)\s+domain(?:\s*name)?\s+has\s*not\s+been\s+register)`)
	reStatusFree    = regexp.MustCompile(`(?i)Domain\s+Status\s*:\s*(?:available|No\s+Object\s+Found)`)
	reTrailingMiss  = regexp.MustCompile(`^.+\s*(?:No\s+match|not\s+exist\s+[io]n\s+database!*)$`)

	reDomainLine       = regexp.MustCompile(`(?i)Domain(?:[\s_]*name)?\s*:[^\n]+`)
	reDomainAvailable  = regexp.MustCompile(`(?i)(?:Domain\s+)?Status\s*:\s*(?:AVAILABLE|(?:No\s+Object|Not)\s+Found)|query_status\s*:\s*220\s*Available`)
	reDomainNotAvail   = regexp.MustCompile(`(?i)(?:Domain\s+)?Status\s*:\s*NOT\s*AVAILABLE`)
	reQueryLine        = regexp.MustCompile(`\n+Query\s*:[^\n]+`)
	reReservedBy       = regexp.MustCompile(`(?i)^\s*Reserved\s*By`)
	reContactLine      = regexp.MustCompile(`(?i)(Registr(?:ar|y|ant)(?:\s[^:]+)?|Whois\s+Server|(?:Phone|Registrar|Contact|(?:admin|tech)-c|Organisations?))\s*:\s*([^\n]+)`)
	reNameServerLine   = regexp.MustCompile(`(?i)(?:Name\s+Servers?|n(?:ame)?servers?)\s*:\s*([^\n]+)`)
	reBillingTechEmail = regexp.MustCompile(`(?i)(?:Billing|Tech)\s+Email\s*:([^\n]+)`)
)

// notFoundPhrases are whole responses, lower-cased and without surrounding
// periods, that mean the domain is free.
var notFoundPhrases = []string{
	"domain not found",
	"not found",
	"no data found",
	"no match",
	"no such domain",
	"this domain name has not been registered",
	"the queried object does not exist",
}

// classifyInput carries the texts a tier looks at. trimmed is the cleaned
// text with surrounding periods removed, which every tier after the
// lookup-failure check works on.
type classifyInput struct {
	raw     string
	clean   string
	trimmed string
}

type tier struct {
	name    string
	match   func(in classifyInput) bool
	verdict Verdict
}

// tiers are evaluated in order and the first match decides.
var tiers = []tier{
	{"empty-not-found", func(in classifyInput) bool {
		return in.clean == "" && in.raw != "" && reEmptyNotFound.MatchString(in.raw)
	}, Unregistered},
	{"empty", func(in classifyInput) bool {
		return in.clean == ""
	}, Unknown},
	{"lookup-failure", func(in classifyInput) bool {
		return strings.Contains(strings.ToLower(in.raw), "failure to locate a record in ")
	}, Unknown},
	{"not-found-phrase", func(in classifyInput) bool {
		lower := strings.ToLower(in.trimmed)
		if slices.Contains(notFoundPhrases, lower) {
			return true
		}
		return strings.HasPrefix(lower, "available") && strings.Contains(in.trimmed, "Domain:")
	}, Unregistered},
	{"not-found-opener", func(in classifyInput) bool {
		return reNotFoundStart.MatchString(in.trimmed)
	}, Unregistered},
	{"status-available", func(in classifyInput) bool {
		return reStatusFree.MatchString(in.trimmed)
	}, Unregistered},
	{"trailing-no-match", func(in classifyInput) bool {
		return reTrailingMiss.MatchString(in.trimmed)
	}, Unregistered},
	{"domain-available", func(in classifyInput) bool {
		return reDomainLine.MatchString(in.trimmed) && reDomainAvailable.MatchString(in.trimmed)
	}, Unregistered},
	{"domain-not-available", func(in classifyInput) bool {
		return reDomainLine.MatchString(in.trimmed) && reDomainNotAvail.MatchString(in.trimmed)
	}, Registered},
	{"status-not-registered", func(in classifyInput) bool {
		return strings.Contains(strings.ToLower(in.trimmed), "status: not registered") &&
			reQueryLine.MatchString(in.trimmed)
	}, Unregistered},
	{"contact-data", hasContactData, Registered},
	{"rate-limited", func(in classifyInput) bool {
		return HasContainLimitedResultData(in.raw)
	}, RateLimited},
	{"default", func(classifyInput) bool {
		return true
	}, Unregistered},
}

// hasContactData matches reserved domains and responses that print a full
// contact record together with name servers or a billing/tech email.
func hasContactData(in classifyInput) bool {
	if reReservedBy.MatchString(in.trimmed) {
		return true
	}
	if m := reContactLine.FindStringSubmatch(in.trimmed); m == nil || m[1] == "" {
		return false
	}
	if m := reNameServerLine.FindStringSubmatch(in.trimmed); m != nil && strings.TrimSpace(m[1]) != "" {
		return true
	}
	m := reBillingTechEmail.FindStringSubmatch(in.trimmed)
	return m != nil && strings.TrimSpace(m[1]) != ""
}

// Classify decides the registration state of a raw WHOIS response.
func Classify(raw string) Verdict {
	v, _ := ClassifyTier(raw)
	return v
}

// ClassifyTier is Classify plus the name of the tier that decided.
func ClassifyTier(raw string) (Verdict, string) {
	return classify(raw, CleanUnwantedWhoIsResult(raw))
}

func classify(raw, clean string) (Verdict, string) {
	in := classifyInput{
		raw:     raw,
		clean:   clean,
		trimmed: strings.Trim(clean, "."),
	}
	for _, t := range tiers {
		if t.match(in) {
			return t.verdict, t.name
		}
	}
	// unreachable: the last tier always matches
	return Unregistered, "default"
}

// TierNames lists the classifier tiers in evaluation order.
func TierNames() []string {
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = t.name
	}
	return names
}
