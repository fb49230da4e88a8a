package whois_tools

import (
	"encoding/json"

	"github.com/KincaidYang/whoisparser/whois_tools/structs"
)

// WhoIsResult is one interpreted WHOIS response. It is built in a single
// pass by NewWhoIsResult and never changes afterwards.
type WhoIsResult struct {
	domainName string
	original   string
	clean      string
	verdict    Verdict
	tier       string
	record     structs.WhoIsRecord
}

// NewWhoIsResult cleans, classifies and extracts raw. matches may be nil.
// serverTemplates are WHOIS server names that may contain {{domain}}.
func NewWhoIsResult(raw string, matches MatchCollection, domainName string, serverTemplates []string) *WhoIsResult {
	clean := CleanUnwantedWhoIsResult(raw)
	verdict, tierName := classify(raw, clean)

	record := ExtractRecord(Extraction{
		Matches:         matches,
		Raw:             raw,
		Base:            structs.NewWhoIsRecord(),
		Verdict:         verdict,
		ServerTemplates: serverTemplates,
		DomainName:      domainName,
	})

	return &WhoIsResult{
		domainName: domainName,
		original:   raw,
		clean:      clean,
		verdict:    verdict,
		tier:       tierName,
		record:     record,
	}
}

// Assemble returns only the record of NewWhoIsResult.
func Assemble(raw string, matches MatchCollection, domainName string, serverTemplates []string) structs.WhoIsRecord {
	return NewWhoIsResult(raw, matches, domainName, serverTemplates).record
}

// DomainName returns the domain the response was fetched for.
func (r *WhoIsResult) DomainName() string { return r.domainName }

// OriginalData returns the raw response.
func (r *WhoIsResult) OriginalData() string { return r.original }

// CleanData returns the response without comments and boilerplate.
func (r *WhoIsResult) CleanData() string { return r.clean }

// Verdict returns the classifier decision.
func (r *WhoIsResult) Verdict() Verdict { return r.verdict }

// Tier returns the name of the classifier tier that decided.
func (r *WhoIsResult) Tier() string { return r.tier }

// IsRegistered returns nil when the state is unknown.
func (r *WhoIsResult) IsRegistered() *bool {
	if r.record.Domain.Registered == nil {
		return nil
	}
	registered := *r.record.Domain.Registered
	return &registered
}

// Record returns a copy of the assembled record.
func (r *WhoIsResult) Record() structs.WhoIsRecord {
	return cloneRecord(r.record)
}

// resultJSON is the wire form of a WhoIsResult.
type resultJSON struct {
	Domain     string              `json:"domain"`
	Verdict    Verdict             `json:"verdict"`
	Tier       string              `json:"tier"`
	Registered *bool               `json:"registered"`
	Clean      string              `json:"clean"`
	Record     structs.WhoIsRecord `json:"record"`
}

// MarshalJSON renders the result with its record.
func (r *WhoIsResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Domain:     r.domainName,
		Verdict:    r.verdict,
		Tier:       r.tier,
		Registered: r.record.Domain.Registered,
		Clean:      r.clean,
		Record:     r.record,
	})
}
