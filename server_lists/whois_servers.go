package server_lists

import (
	"slices"
	"strings"
	"sync"
)

// TLDToWhoisServer maps a TLD to its WHOIS server templates. A template may
// contain {{domain}}, which is replaced by the queried domain.
var TLDToWhoisServer = map[string][]string{
	"com":         {"whois.verisign-grs.com"},
	"net":         {"whois.verisign-grs.com"},
	"org":         {"whois.publicinterestregistry.org"},
	"info":        {"whois.nic.info"},
	"io":          {"whois.nic.io"},
	"cn":          {"whois.cnnic.cn"},
	"xn--fiqs8s":  {"cwhois.cnnic.cn"},
	"xn--fiqz9s":  {"cwhois.cnnic.cn"},
	"hk":          {"whois.hkirc.hk"},
	"xn--j6w193g": {"whois.hkirc.hk"},
	"tw":          {"whois.twnic.net.tw"},
	"so":          {"whois.nic.so"},
	"sb":          {"whois.nic.net.sb"},
	"sg":          {"whois.sgnic.sg"},
	"mo":          {"whois.monic.mo"},
	"ru":          {"whois.tcinet.ru"},
	"su":          {"whois.tcinet.ru"},
	"au":          {"whois.auda.org.au"},
	"la":          {"whois.nic.la"},
	"be":          {"whois.dns.be"},
	"za":          {"whois.registry.net.za"},
	"ph":          {"whois.dot.ph"},
	"uk":          {"whois.nic.uk"},
	"de":          {"whois.denic.de"},
}

var mu sync.RWMutex

// ServersFor returns a copy of the templates configured for tld.
func ServersFor(tld string) ([]string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	servers, ok := TLDToWhoisServer[strings.ToLower(tld)]
	if !ok || len(servers) == 0 {
		return nil, false
	}
	return slices.Clone(servers), true
}

// Override replaces or adds the templates of the given TLDs.
func Override(servers map[string][]string) {
	mu.Lock()
	defer mu.Unlock()
	for tld, list := range servers {
		TLDToWhoisServer[strings.ToLower(tld)] = slices.Clone(list)
	}
}
