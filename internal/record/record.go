// Package record holds the record types a subdomain owner may set and the
// helpers the editor needs around them.
package record

import (
	pdnsapi "github.com/joeig/go-powerdns/v3"
)

// Supported record types. They share their names with the PowerDNS API.
const (
	TypeA     = string(pdnsapi.RRTypeA)
	TypeAAAA  = string(pdnsapi.RRTypeAAAA)
	TypeCNAME = string(pdnsapi.RRTypeCNAME)
	TypeTXT   = string(pdnsapi.RRTypeTXT)
)

// GenericPlaceholder is shown for a type without a dedicated example.
const GenericPlaceholder = "값을 입력하세요"

// Types lists the supported record types in display order.
var Types = []string{TypeA, TypeAAAA, TypeCNAME, TypeTXT} //nolint:gochecknoglobals

var placeholders = map[string]string{ //nolint:gochecknoglobals
	TypeA:     "예: 192.168.1.1",
	TypeAAAA:  "예: 2001:0db8:85a3:0000:0000:8a2e:0370:7334",
	TypeCNAME: "예: example.com",
	TypeTXT:   "예: verification=abcd1234",
}

// Placeholder returns the example value shown in an empty input for recordType.
func Placeholder(recordType string) string {
	if p, ok := placeholders[recordType]; ok {
		return p
	}

	return GenericPlaceholder
}

// IsSupported reports whether recordType is one of Types.
func IsSupported(recordType string) bool {
	_, ok := placeholders[recordType]
	return ok
}

// FullDomain joins a subdomain and its zone.
func FullDomain(subDomain, zone string) string {
	return subDomain + "." + zone
}

// Entry is one record as the backend lists it.
type Entry struct {
	Type    string
	Content string
}

// Map holds at most one content per record type.
type Map map[string]string

// BuildMap keys entries by type. A later entry of the same type wins,
// so building twice from the same list yields the same map.
func BuildMap(entries []Entry) Map {
	m := make(Map, len(entries))

	for _, e := range entries {
		m[e.Type] = e.Content
	}

	return m
}

// Lookup returns the content stored for recordType or "".
func (m Map) Lookup(recordType string) string {
	return m[recordType]
}

// Sorted returns the entries of m in the order of Types, unknown types last.
func (m Map) Sorted() []Entry {
	out := make([]Entry, 0, len(m))

	for _, t := range Types {
		if c, ok := m[t]; ok {
			out = append(out, Entry{Type: t, Content: c})
		}
	}

	for t, c := range m {
		if !IsSupported(t) {
			out = append(out, Entry{Type: t, Content: c})
		}
	}

	return out
}
