package whois_tools

import "testing"

func TestExtractLastDatabaseUpdate(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{">>> Last update of WHOIS database: 2025-10-12T05:44:20.0Z <<<", "Last update of WHOIS database: 2025-10-12T05:44:20", true},
		{"Last update of whois database: 2020-01-01", "Last update of whois database: 2020-01-01", true},
		{"Last update of WHOIS database: <unknown>", "", false},
		{"Domain: example.com", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		got, ok := ExtractLastDatabaseUpdate(test.input)
		if got != test.want || ok != test.wantOk {
			t.Errorf("ExtractLastDatabaseUpdate(%q) = %q, %v; want %q, %v", test.input, got, ok, test.want, test.wantOk)
		}
	}
}

func TestExtractIcannReportURL(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"URL of the ICANN Whois Inaccuracy Complaint Form: https://www.icann.org/wicf/", "https://www.icann.org/wicf/", true},
		{"URL of the ICANN WHOIS Data Problem Reporting System: http://wdprs.internic.net/", "http://wdprs.internic.net/", true},
		{"Registrar URL: https://example.com", "", false},
	}

	for _, test := range tests {
		got, ok := ExtractIcannReportURL(test.input)
		if got != test.want || ok != test.wantOk {
			t.Errorf("ExtractIcannReportURL(%q) = %q, %v; want %q, %v", test.input, got, ok, test.want, test.wantOk)
		}
	}
}

func TestExtractWhoisServerHost(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"Domain Name: EXAMPLE.COM\nRegistrar WHOIS Server: whois.example.net\n", "whois.example.net", true},
		{"Whois Server:   \nfoo", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		got, ok := ExtractWhoisServerHost(test.input)
		if got != test.want || ok != test.wantOk {
			t.Errorf("ExtractWhoisServerHost(%q) = %q, %v; want %q, %v", test.input, got, ok, test.want, test.wantOk)
		}
	}
}

func TestHasContainLimitedResultData(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"You have passed the daily limit of queries", true},
		{"Your access is temporarily denied", true},
		{"You have exceeded the query limit", true},
		{"WHOIS LIMIT EXCEEDED", true},
		{"Domain Name: example.com", false},
		{"", false},
	}

	for _, test := range tests {
		if got := HasContainLimitedResultData(test.input); got != test.want {
			t.Errorf("HasContainLimitedResultData(%q) = %v; want %v", test.input, got, test.want)
		}
	}
}
