package structs

// DNSSec holds the DNSSEC state reported for a domain.
type DNSSec struct {
	Status string   `json:"Status"` // Status is the signing status, e.g. "unsigned".
	Data   []string `json:"Data"`   // Data is the raw DS / key data lines.
}

// Domain is the domain section of a WhoIsRecord.
type Domain struct {
	ID         string   `json:"Domain ID"`
	Status     []string `json:"Domain Status"`
	NameServer []string `json:"Name Server"`
	DNSSec     DNSSec   `json:"DNSSEC"`
	// Registered is nil when the registration state could not be decided.
	Registered *bool `json:"Registered"`
}

// Date holds the lifecycle dates. Values are RFC 3339 (UTC) when the
// registry date could be parsed, the raw registry string otherwise.
type Date struct {
	Created      string `json:"Creation Date"`
	Updated      string `json:"Updated Date"`
	Expires      string `json:"Expiry Date"`
	LastUpdateDB string `json:"Last Update of Database"`
}

// Contact is the shape shared by the registrar and every registrant role.
type Contact struct {
	ID           string   `json:"ID"`
	Name         string   `json:"Name"`
	Organization string   `json:"Organization"`
	Email        string   `json:"Email"`
	Country      string   `json:"Country"`
	City         string   `json:"City"`
	Street       []string `json:"Street"`
	PostalCode   string   `json:"Postal Code"`
	State        string   `json:"State"`
	Phone        []string `json:"Phone"`
	Fax          []string `json:"Fax"`
}

// Abuse lists the registrar abuse contact channels.
type Abuse struct {
	URL   []string `json:"URL"`
	Email []string `json:"Email"`
	Phone []string `json:"Phone"`
}

// Registrar is a Contact plus the IANA id and abuse channels.
type Registrar struct {
	IANAID string `json:"IANA ID"`
	Contact
	Abuse Abuse `json:"Abuse"`
}

// URL holds the WHOIS servers and reporting links for a domain.
type URL struct {
	WhoisServers []string `json:"Whois Server"`
	Server       string   `json:"Primary Server"`
	Report       string   `json:"ICANN Report URL"`
}

// WhoIsRecord is the structured form of one WHOIS response.
type WhoIsRecord struct {
	Domain     Domain    `json:"Domain"`
	Date       Date      `json:"Date"`
	Registrar  Registrar `json:"Registrar"`
	Registrant Contact   `json:"Registrant"`
	Billing    Contact   `json:"Billing"`
	Tech       Contact   `json:"Tech"`
	Admin      Contact   `json:"Admin"`
	URL        URL       `json:"URL"`
}

// NewContact returns a Contact whose list fields are empty, not nil.
func NewContact() Contact {
	return Contact{
		Street: []string{},
		Phone:  []string{},
		Fax:    []string{},
	}
}

// NewWhoIsRecord returns the base record every lookup starts from.
func NewWhoIsRecord() WhoIsRecord {
	return WhoIsRecord{
		Domain: Domain{
			Status:     []string{},
			NameServer: []string{},
			DNSSec:     DNSSec{Data: []string{}},
		},
		Registrar: Registrar{
			Contact: NewContact(),
			Abuse: Abuse{
				URL:   []string{},
				Email: []string{},
				Phone: []string{},
			},
		},
		Registrant: NewContact(),
		Billing:    NewContact(),
		Tech:       NewContact(),
		Admin:      NewContact(),
		URL: URL{
			WhoisServers: []string{},
		},
	}
}
