package utils

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

var reDomain = regexp.MustCompile(`(?i)^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+(?:[a-z]{2,63}|xn--[a-z0-9-]{1,59})$`)

// ErrInvalidDomain is returned for names that are not domains.
var ErrInvalidDomain = errors.New("invalid domain name")

// IsDomain reports whether s is a syntactically valid ASCII domain name.
func IsDomain(s string) bool {
	return reDomain.MatchString(s)
}

// NormalizeDomain converts an IDN to punycode and reduces it to the
// registrable domain. It also returns the last label of the public suffix,
// which selects the WHOIS server ("com.cn" gives "cn").
func NormalizeDomain(name string) (domain, tld string, err error) {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil || !IsDomain(ascii) {
		return "", "", ErrInvalidDomain
	}

	suffix, _ := publicsuffix.PublicSuffix(ascii)
	if i := strings.LastIndex(suffix, "."); i >= 0 {
		suffix = suffix[i+1:]
	}

	domain, err = publicsuffix.EffectiveTLDPlusOne(ascii)
	if err != nil || domain == "" {
		domain = ascii
	}
	return domain, suffix, nil
}
