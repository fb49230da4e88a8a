package whois_tools

import (
	"regexp"
	"strings"
	"time"

	"github.com/KincaidYang/whoisparser/whois_tools/structs"
	"github.com/araddon/dateparse"
)

// DomainPlaceholder is replaced by the queried domain in server templates.
const DomainPlaceholder = "{{domain}}"

var (
	reUpdateDBLabel = regexp.MustCompile(`^[^:0-9][^:]*:\s*`)
	reURLScheme     = regexp.MustCompile(`(?i)^(?:(?:http|ftp)s?)://`)
)

// Extraction is the input of ExtractRecord.
type Extraction struct {
	Matches MatchCollection
	// Raw is the original response, used for signals the match table may
	// not carry (ICANN report URL).
	Raw string
	// Base supplies the defaults for scalar fields and the primary server.
	Base            structs.WhoIsRecord
	Verdict         Verdict
	ServerTemplates []string
	DomainName      string
}

// ExtractRecord maps the named matches onto a WhoIsRecord. Scalars take the
// first value (or the Base value), lists take every value. When the
// collection holds no values at all only the registered flag and the
// configured server templates are applied to Base.
func ExtractRecord(in Extraction) structs.WhoIsRecord {
	mc := in.Matches
	if mc == nil {
		mc = Matches{}
	}

	record := cloneRecord(in.Base)
	record.Domain.Registered = registeredFlag(in.Verdict, mc.Get(KeyNameServer))
	if countMatches(mc) == 0 {
		record.URL = extractURL(mc, in, record.URL)
		return record
	}

	record.Domain = extractDomain(mc, record.Domain)
	record.Date = extractDate(mc, record.Date)
	record.Registrar = extractRegistrar(mc, record.Registrar)
	record.Registrant = extractContact(mc, RoleRegistrant, record.Registrant)
	record.Billing = extractContact(mc, RoleBilling, record.Billing)
	record.Tech = extractContact(mc, RoleTech, record.Tech)
	record.Admin = extractContact(mc, RoleAdmin, record.Admin)
	record.URL = extractURL(mc, in, record.URL)
	return record
}

// registeredFlag is nil for Unknown. Otherwise a domain counts as
// registered when the classifier said so, or when it was not declared free
// and name servers are delegated (reserved domains).
func registeredFlag(v Verdict, nameServers []string) *bool {
	if v == Unknown {
		return nil
	}
	registered := v == Registered || (v != Unregistered && len(nameServers) > 0)
	return &registered
}

func extractDomain(mc MatchCollection, base structs.Domain) structs.Domain {
	return structs.Domain{
		ID:         firstOrDefault(mc, KeyDomainID, base.ID),
		Status:     listOf(mc, KeyDomainStatus),
		NameServer: listOf(mc, KeyNameServer),
		DNSSec: structs.DNSSec{
			Status: firstOrDefault(mc, KeyDomainDNSSecStatus, base.DNSSec.Status),
			Data:   listOf(mc, KeyDomainDNSSec),
		},
		Registered: base.Registered,
	}
}

func extractDate(mc MatchCollection, base structs.Date) structs.Date {
	updateDB := firstOrDefault(mc, KeyDateLastUpdateDB, "")
	if updateDB != "" {
		updateDB = normalizeDate(reUpdateDBLabel.ReplaceAllString(updateDB, ""))
	} else {
		updateDB = base.LastUpdateDB
	}

	return structs.Date{
		Created:      normalizeDate(firstOrDefault(mc, KeyDateCreated, base.Created)),
		Updated:      normalizeDate(firstOrDefault(mc, KeyDateUpdated, base.Updated)),
		Expires:      normalizeDate(firstOrDefault(mc, KeyDateExpired, base.Expires)),
		LastUpdateDB: updateDB,
	}
}

// normalizeDate renders a registry date as RFC 3339 in UTC. Dates that do
// not parse are kept as written.
func normalizeDate(value string) string {
	if value == "" {
		return ""
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(value), time.UTC)
	if err != nil {
		return value
	}
	return t.UTC().Format(time.RFC3339)
}

func extractContact(mc MatchCollection, role string, base structs.Contact) structs.Contact {
	key := func(field string) string { return ContactKey(role, field) }
	return structs.Contact{
		ID:           firstOrDefault(mc, key(FieldID), base.ID),
		Name:         firstOrDefault(mc, key(FieldName), base.Name),
		Organization: firstOrDefault(mc, key(FieldOrg), base.Organization),
		Email:        sanitizeEmail(firstOrDefault(mc, key(FieldEmail), base.Email)),
		Country:      firstOrDefault(mc, key(FieldCountry), base.Country),
		City:         firstOrDefault(mc, key(FieldCity), base.City),
		Street:       listOf(mc, key(FieldStreet)),
		PostalCode:   firstOrDefault(mc, key(FieldPostal), base.PostalCode),
		State:        firstOrDefault(mc, key(FieldState), base.State),
		Phone:        listOf(mc, key(FieldPhone)),
		Fax:          listOf(mc, key(FieldFax)),
	}
}

func extractRegistrar(mc MatchCollection, base structs.Registrar) structs.Registrar {
	registrar := structs.Registrar{
		IANAID:  firstOrDefault(mc, KeyRegistrarIANAID, base.IANAID),
		Contact: extractContact(mc, RoleRegistrar, base.Contact),
	}

	urls := make([]string, 0, len(mc.Get(KeyRegistrarURL)))
	for _, u := range mc.Get(KeyRegistrarURL) {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if !reURLScheme.MatchString(u) {
			u = "http://" + u
		}
		urls = append(urls, u)
	}

	emails := []string{}
	for _, e := range mc.Get(KeyRegistrarAbuseMail) {
		if e = sanitizeEmail(e); e != "" {
			emails = append(emails, e)
		}
	}
	if len(emails) == 0 && registrar.Email != "" {
		emails = []string{registrar.Email}
	}

	phones := listOf(mc, KeyRegistrarAbusePhone)
	if len(phones) == 0 {
		phones = append(phones, registrar.Phone...)
	}

	registrar.Abuse = structs.Abuse{
		URL:   urls,
		Email: emails,
		Phone: phones,
	}
	return registrar
}

// sanitizeEmail drops addresses containing "..", which registries use to
// mask hidden contacts.
func sanitizeEmail(email string) string {
	if strings.Contains(email, "..") {
		return ""
	}
	return email
}

func extractURL(mc MatchCollection, in Extraction, base structs.URL) structs.URL {
	servers := listOf(mc, KeyWhoisServer)
	for _, tpl := range in.ServerTemplates {
		servers = append(servers, strings.ReplaceAll(tpl, DomainPlaceholder, in.DomainName))
	}
	servers = dedupeServers(servers)

	url := structs.URL{
		WhoisServers: servers,
		Server:       base.Server,
		Report:       base.Report,
	}
	if url.Server == "" && len(servers) > 0 {
		url.Server = servers[0]
	}

	report := firstOrDefault(mc, KeyIcannReportURL, "")
	if report == "" {
		report, _ = ExtractIcannReportURL(in.Raw)
	}
	if report != "" {
		url.Report = report
	}
	return url
}

// dedupeServers drops blanks and case-insensitive duplicates, keeping the
// first occurrence, and lower-cases the result.
func dedupeServers(servers []string) []string {
	seen := make(map[string]struct{}, len(servers))
	out := make([]string, 0, len(servers))
	for _, s := range servers {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func cloneRecord(r structs.WhoIsRecord) structs.WhoIsRecord {
	r.Domain.Status = cloneList(r.Domain.Status)
	r.Domain.NameServer = cloneList(r.Domain.NameServer)
	r.Domain.DNSSec.Data = cloneList(r.Domain.DNSSec.Data)
	if r.Domain.Registered != nil {
		registered := *r.Domain.Registered
		r.Domain.Registered = &registered
	}
	r.Registrar.Contact = cloneContact(r.Registrar.Contact)
	r.Registrar.Abuse.URL = cloneList(r.Registrar.Abuse.URL)
	r.Registrar.Abuse.Email = cloneList(r.Registrar.Abuse.Email)
	r.Registrar.Abuse.Phone = cloneList(r.Registrar.Abuse.Phone)
	r.Registrant = cloneContact(r.Registrant)
	r.Billing = cloneContact(r.Billing)
	r.Tech = cloneContact(r.Tech)
	r.Admin = cloneContact(r.Admin)
	r.URL.WhoisServers = cloneList(r.URL.WhoisServers)
	return r
}

func cloneContact(c structs.Contact) structs.Contact {
	c.Street = cloneList(c.Street)
	c.Phone = cloneList(c.Phone)
	c.Fax = cloneList(c.Fax)
	return c
}

// cloneList copies a list, turning nil into an empty slice.
func cloneList(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
