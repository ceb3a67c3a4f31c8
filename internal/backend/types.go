package backend

// Identity is the answer of /api/me. Its presence alone means authenticated.
type Identity struct {
	ID string `json:"id"`
}

// ZoneCapability tells whether a subdomain may be registered below a zone.
type ZoneCapability struct {
	Name   string `json:"name"`
	CanAdd bool   `json:"canAdd"`
}

// Availability is the answer of /api/available-domains/{subDomain}.
type Availability struct {
	SubDomain string           `json:"subDomain"`
	Zones     []ZoneCapability `json:"zones"`
}

// Record is one DNS record of a fully-qualified domain.
type Record struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// AddRecordRequest is the body of /api/add-record.
type AddRecordRequest struct {
	SubDomain string `json:"subDomain"`
	Zone      string `json:"zone"`
	Type      string `json:"type"`
	Content   string `json:"content"`
}

// OwnedDomain is one entry of /api/my-domains.
type OwnedDomain struct {
	SubDomain      string `json:"subDomain"`
	Zone           string `json:"zone"`
	ExpirationDate *Date  `json:"expirationDate"`
}
