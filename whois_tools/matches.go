package whois_tools

import "strings"

// MatchCollection is the named-match input of the field extractor: every
// key maps to the ordered values a pattern table found for it. Unknown keys
// yield an empty sequence.
type MatchCollection interface {
	Get(key string) []string
}

// Matches is the map-backed MatchCollection.
type Matches map[string][]string

// Get returns the values stored under key.
func (m Matches) Get(key string) []string {
	return m[key]
}

// Add appends non-blank values under key.
func (m Matches) Add(key string, values ...string) {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		m[key] = append(m[key], v)
	}
}

// Match keys understood by the extractor.
const (
	KeyDomainID           = "domain_id"
	KeyDomainStatus       = "domain_status"
	KeyNameServer         = "name_server"
	KeyDomainDNSSecStatus = "domain_dnssec_status"
	KeyDomainDNSSec       = "domain_dnssec"

	KeyDateCreated      = "date_created"
	KeyDateUpdated      = "date_updated"
	KeyDateExpired      = "date_expired"
	KeyDateLastUpdateDB = "date_last_update_db"

	KeyRegistrarIANAID     = "registrar_iana_id"
	KeyRegistrarURL        = "registrar_url"
	KeyRegistrarAbuseMail  = "registrar_abuse_mail"
	KeyRegistrarAbusePhone = "registrar_abuse_phone"

	KeyWhoisServer    = "whois_server"
	KeyIcannReportURL = "icann_report_url"
)

// Contact roles; a role's keys are "<role>_<field>".
const (
	RoleRegistrar  = "registrar"
	RoleRegistrant = "registrant"
	RoleBilling    = "billing"
	RoleTech       = "tech"
	RoleAdmin      = "admin"
)

// Contact fields shared by every role.
const (
	FieldID      = "id"
	FieldName    = "name"
	FieldOrg     = "org"
	FieldEmail   = "email"
	FieldCountry = "country"
	FieldCity    = "city"
	FieldStreet  = "street"
	FieldPostal  = "postal"
	FieldState   = "state"
	FieldPhone   = "phone"
	FieldFax     = "fax"
)

var contactFields = []string{
	FieldID, FieldName, FieldOrg, FieldEmail, FieldCountry, FieldCity,
	FieldStreet, FieldPostal, FieldState, FieldPhone, FieldFax,
}

// ContactKey builds the match key of a contact field, e.g. "tech_email".
func ContactKey(role, field string) string {
	return role + "_" + field
}

// MatchKeys returns every key the extractor reads.
func MatchKeys() []string {
	keys := []string{
		KeyDomainID, KeyDomainStatus, KeyNameServer, KeyDomainDNSSecStatus, KeyDomainDNSSec,
		KeyDateCreated, KeyDateUpdated, KeyDateExpired, KeyDateLastUpdateDB,
		KeyRegistrarIANAID, KeyRegistrarURL, KeyRegistrarAbuseMail, KeyRegistrarAbusePhone,
		KeyWhoisServer, KeyIcannReportURL,
	}
	for _, role := range []string{RoleRegistrar, RoleRegistrant, RoleBilling, RoleTech, RoleAdmin} {
		for _, field := range contactFields {
			keys = append(keys, ContactKey(role, field))
		}
	}
	return keys
}

// countMatches is the total number of values over all known keys.
func countMatches(mc MatchCollection) int {
	total := 0
	for _, key := range MatchKeys() {
		total += len(mc.Get(key))
	}
	return total
}

// firstOrDefault returns the first value under key, or def when there is
// none or it is empty.
func firstOrDefault(mc MatchCollection, key, def string) string {
	values := mc.Get(key)
	if len(values) == 0 || values[0] == "" {
		return def
	}
	return values[0]
}

// listOf copies the values under key into a non-nil slice.
func listOf(mc MatchCollection, key string) []string {
	values := mc.Get(key)
	out := make([]string, len(values))
	copy(out, values)
	return out
}
