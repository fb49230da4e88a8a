package whois_tools

import (
	"math/rand"
	"strings"
	"testing"
)

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Verdict
		wantTier string
	}{
		{"empty", "", Unknown, "empty"},
		{"comment not found", "% No entries found for the selected source(s).\n", Unregistered, "empty-not-found"},
		{"comment only", "%% comment only", Unknown, "empty"},
		{"lookup failure", "Failure to locate a record in the database", Unknown, "lookup-failure"},
		{"phrase", "Domain not found.", Unregistered, "not-found-phrase"},
		{"phrase upper", "NOT FOUND", Unregistered, "not-found-phrase"},
		{"phrase sentence", "This domain name has not been registered.", Unregistered, "not-found-phrase"},
		{"available co.za", "Available\nDomain: example.co.za", Unregistered, "not-found-phrase"},
		{"no match", "No match for DOMAIN.COM", Unregistered, "not-found-opener"},
		{"no match quoted", "No match for \"EXAMPLE.COM\".\n>>> Last update of WHOIS database: 2025-01-01T00:00:00Z <<<", Unregistered, "not-found-opener"},
		{"status no object", "Domain Name: example.xyz\nDomain Status: No Object Found", Unregistered, "status-available"},
		{"trailing", "Object example.tld not exist in database!", Unregistered, "trailing-no-match"},
		{"domain available", "Domain: example.be\nStatus: AVAILABLE", Unregistered, "domain-available"},
		{"query status", "Domain_name: example.xx\nquery_status: 220 Available", Unregistered, "domain-available"},
		{"domain not available", "Domain Name: example.be\nDomain Status: NOT AVAILABLE", Registered, "domain-not-available"},
		{"status not registered", "Status: Not Registered\nQuery: example.tld", Unregistered, "status-not-registered"},
		{"reserved", "Reserved By Registry\nfoo", Registered, "contact-data"},
		{"icann record", icannResponse, Registered, "contact-data"},
		{"billing email", "Registrant Name: Example Org\nBilling Email: billing@example.org", Registered, "contact-data"},
		{"la record", laResponse, Registered, "contact-data"},
		{"registrant with name server", "Registrant Name: Example Org\nName Server: ns1.example.org", Registered, "contact-data"},
		{"bare registrant label", "Registrant: Example Org\nnserver: ns1.example.org", Registered, "contact-data"},
		{"registrant without delegation", "Registrant Name: Example Org", Unregistered, "default"},
		{"rate limited", "You have exceeded the query limit", RateLimited, "rate-limited"},
		{"default", "Some unrecognised registry banner", Unregistered, "default"},
	}

	for _, test := range tests {
		got, tierName := ClassifyTier(test.input)
		if got != test.want || tierName != test.wantTier {
			t.Errorf("%s: ClassifyTier(%q) = %v, %q; want %v, %q", test.name, test.input, got, tierName, test.want, test.wantTier)
		}
		if v := Classify(test.input); v != got {
			t.Errorf("%s: Classify = %v; ClassifyTier = %v", test.name, v, got)
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	words := []string{
		"Domain", "Name:", "Status:", "No", "match", "for", "%", "#", ">>>", "Registrar",
		"Name Server:", "AVAILABLE", "\n", "\r\n", "\t", ".", "limit", "exceeded", "Query:", "",
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.Intn(12); n > 0; n-- {
			b.WriteString(words[rng.Intn(len(words))])
			b.WriteString(" ")
		}
		switch v := Classify(b.String()); v {
		case Unknown, Registered, Unregistered, RateLimited:
		default:
			t.Fatalf("Classify(%q) = %d; not a verdict", b.String(), v)
		}
	}
}

func TestVerdictString(t *testing.T) {
	tests := []struct {
		input Verdict
		want  string
	}{
		{Unknown, "unknown"},
		{Registered, "registered"},
		{Unregistered, "unregistered"},
		{RateLimited, "rate_limited"},
		{Verdict(42), "unknown"},
	}

	for _, test := range tests {
		if got := test.input.String(); got != test.want {
			t.Errorf("Verdict(%d).String() = %q; want %q", test.input, got, test.want)
		}
		text, _ := test.input.MarshalText()
		if string(text) != test.want {
			t.Errorf("Verdict(%d).MarshalText() = %q; want %q", test.input, text, test.want)
		}
	}
}

func TestTierNames(t *testing.T) {
	names := TierNames()
	if len(names) != 13 {
		t.Fatalf("len(TierNames()) = %d; want 13", len(names))
	}
	if names[0] != "empty-not-found" || names[len(names)-1] != "default" {
		t.Errorf("TierNames() = %v; want empty-not-found first and default last", names)
	}
}
