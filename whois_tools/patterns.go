package whois_tools

import (
	"regexp"
	"strings"
)

// fieldPattern maps one match key to the labels that carry it.
type fieldPattern struct {
	key string
	re  *regexp.Regexp
	// firstWord keeps only the first token, for status lines that append
	// an explanation URL.
	firstWord bool
}

func labelPattern(labels string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:` + labels + `)[ \t]*:[ \t]*([^\n]*?)[ \t]*$`)
}

// contactLabels holds the label prefixes of each contact role.
var contactLabels = map[string]string{
	RoleRegistrant: `Registrant(?: Contact)?`,
	RoleAdmin:      `Admin(?:istrative)?(?: Contact)?`,
	RoleTech:       `Tech(?:nical)?(?: Contact)?`,
	RoleBilling:    `Billing(?: Contact)?`,
}

// registryIDLabels is the ICANN form that puts "Registry" before the role,
// as in "Registry Registrant ID".
var registryIDLabels = map[string]string{
	RoleRegistrant: `Registry Registrant ID`,
	RoleAdmin:      `Registry Admin(?:istrative)? ID`,
	RoleTech:       `Registry Tech(?:nical)? ID`,
	RoleBilling:    `Registry Billing ID`,
}

var contactFieldLabels = map[string]string{
	FieldID:      `(?:Registry )?ID`,
	FieldName:    `Name`,
	FieldOrg:     `Organi[sz]ation`,
	FieldEmail:   `E-?mail`,
	FieldCountry: `Country(?: Code)?`,
	FieldCity:    `City`,
	FieldStreet:  `Street(?: Address)?|Address`,
	FieldPostal:  `Postal ?Code`,
	FieldState:   `State(?:/Province)?`,
	FieldPhone:   `Phone(?: Number)?`,
	FieldFax:     `Fax(?: Number)?`,
}

// genericPatterns covers the ICANN "Key: Value" layout most gTLD and many
// ccTLD registries use.
var genericPatterns = buildGenericPatterns()

func buildGenericPatterns() []fieldPattern {
	patterns := []fieldPattern{
		{key: KeyDomainID, re: labelPattern(`Registry Domain ID|Domain ID|ROID`)},
		{key: KeyDomainStatus, re: labelPattern(`Domain Status|Status`), firstWord: true},
		{key: KeyNameServer, re: labelPattern(`Name Servers?|Nameservers?|nserver`)},
		{key: KeyDomainDNSSecStatus, re: labelPattern(`DNSSEC`)},
		{key: KeyDomainDNSSec, re: labelPattern(`DNSSEC DS Data|DS Record`)},

		{key: KeyDateCreated, re: labelPattern(`Creation Date|Created(?: On| Date)?|Registration Time|Registered(?: On)?|Domain Name Commencement Date`)},
		{key: KeyDateUpdated, re: labelPattern(`Updated Date|Last Updated(?: On)?|Last Modified|Changed`)},
		{key: KeyDateExpired, re: labelPattern(`Registry Expiry Date|Registrar Registration Expiration Date|Expir(?:y|ation) Date|Expiration Time|Expires(?: On)?|paid-till`)},

		{key: KeyRegistrarIANAID, re: labelPattern(`Registrar IANA ID`)},
		{key: ContactKey(RoleRegistrar, FieldID), re: labelPattern(`Registrar ID`)},
		{key: ContactKey(RoleRegistrar, FieldName), re: labelPattern(`Registrar|Sponsoring Registrar|Registrar Name`)},
		{key: ContactKey(RoleRegistrar, FieldOrg), re: labelPattern(`Registrar Organi[sz]ation`)},
		{key: ContactKey(RoleRegistrar, FieldEmail), re: labelPattern(`Registrar E-?mail`)},
		{key: ContactKey(RoleRegistrar, FieldCountry), re: labelPattern(`Registrar Country`)},
		{key: ContactKey(RoleRegistrar, FieldCity), re: labelPattern(`Registrar City`)},
		{key: ContactKey(RoleRegistrar, FieldStreet), re: labelPattern(`Registrar Street|Registrar Address`)},
		{key: ContactKey(RoleRegistrar, FieldPostal), re: labelPattern(`Registrar Postal ?Code`)},
		{key: ContactKey(RoleRegistrar, FieldState), re: labelPattern(`Registrar State(?:/Province)?`)},
		{key: ContactKey(RoleRegistrar, FieldPhone), re: labelPattern(`Registrar Phone`)},
		{key: ContactKey(RoleRegistrar, FieldFax), re: labelPattern(`Registrar Fax`)},
		{key: KeyRegistrarURL, re: labelPattern(`Registrar URL|Referral URL`)},
		{key: KeyRegistrarAbuseMail, re: labelPattern(`Registrar Abuse Contact Email`)},
		{key: KeyRegistrarAbusePhone, re: labelPattern(`Registrar Abuse Contact Phone`)},

		{key: KeyWhoisServer, re: labelPattern(`Registrar WHOIS Server|Whois Server`)},
	}

	for _, role := range []string{RoleRegistrant, RoleAdmin, RoleTech, RoleBilling} {
		for _, field := range contactFields {
			labels := contactLabels[role] + ` (?:` + contactFieldLabels[field] + `)`
			if field == FieldID {
				labels += `|` + registryIDLabels[role]
			}
			patterns = append(patterns, fieldPattern{
				key: ContactKey(role, field),
				re:  labelPattern(labels),
			})
		}
	}
	return patterns
}

// MatchPatterns runs the generic pattern table over a raw response.
// Registry specific tables can feed NewWhoIsResult their own Matches.
func MatchPatterns(raw string) Matches {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	matches := Matches{}

	for _, p := range genericPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			value := m[1]
			if p.firstWord {
				if fields := strings.Fields(value); len(fields) > 0 {
					value = fields[0]
				}
			}
			matches.Add(p.key, value)
		}
	}

	if updated, ok := ExtractLastDatabaseUpdate(text); ok {
		matches.Add(KeyDateLastUpdateDB, updated)
	}
	if report, ok := ExtractIcannReportURL(text); ok {
		matches.Add(KeyIcannReportURL, report)
	}
	return matches
}
