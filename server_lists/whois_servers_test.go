package server_lists

import (
	"reflect"
	"testing"
)

func TestServersFor(t *testing.T) {
	tests := []struct {
		tld    string
		want   []string
		wantOk bool
	}{
		{"com", []string{"whois.verisign-grs.com"}, true},
		{"LA", []string{"whois.nic.la"}, true},
		{"xn--fiqs8s", []string{"cwhois.cnnic.cn"}, true},
		{"invalidtld", nil, false},
	}

	for _, test := range tests {
		got, ok := ServersFor(test.tld)
		if ok != test.wantOk || !reflect.DeepEqual(got, test.want) {
			t.Errorf("ServersFor(%q) = %v, %v; want %v, %v", test.tld, got, ok, test.want, test.wantOk)
		}
	}
}

func TestServersForReturnsCopy(t *testing.T) {
	got, _ := ServersFor("com")
	got[0] = "changed"

	if again, _ := ServersFor("com"); again[0] != "whois.verisign-grs.com" {
		t.Errorf("ServersFor shares its slice: %v", again)
	}
}

func TestOverride(t *testing.T) {
	Override(map[string][]string{"EXAMPLE": {"whois.{{domain}}.test", "whois.nic.example"}})
	t.Cleanup(func() {
		mu.Lock()
		delete(TLDToWhoisServer, "example")
		mu.Unlock()
	})

	got, ok := ServersFor("example")
	want := []string{"whois.{{domain}}.test", "whois.nic.example"}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("ServersFor(example) = %v, %v; want %v", got, ok, want)
	}
}
