package record

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidIPv4 is returned for A content that is not a dotted quad.
	ErrInvalidIPv4 = errors.New("A 레코드 값이 IPv4 주소 형식이 아닙니다")

	// ErrInvalidIPv6 is returned for AAAA content that is not an IPv6 address.
	ErrInvalidIPv6 = errors.New("AAAA 레코드 값이 IPv6 주소 형식이 아닙니다")

	// ErrInvalidHostname is returned for CNAME content that is not a hostname.
	ErrInvalidHostname = errors.New("CNAME 레코드 값이 도메인 형식이 아닙니다")

	// ErrTXTTooLong is returned for TXT content longer than one character-string.
	ErrTXTTooLong = errors.New("TXT 레코드 값은 255자를 넘을 수 없습니다")
)

// contentRule is the validator tag a content of one type has to pass
// and the error reported when it does not.
type contentRule struct {
	tag string
	err error
}

var (
	validate = validator.New() //nolint:gochecknoglobals

	// an IPv4-mapped IPv6 address passes ipv4, so colons are excluded
	contentRules = map[string]contentRule{ //nolint:gochecknoglobals
		TypeA:     {tag: "ipv4,excludes=:", err: ErrInvalidIPv4},
		TypeAAAA:  {tag: "ipv6", err: ErrInvalidIPv6},
		TypeCNAME: {tag: "max=253,hostname_rfc1123", err: ErrInvalidHostname},
		TypeTXT:   {tag: "max=255", err: ErrTXTTooLong},
	}
)

// Check tells whether content looks acceptable for recordType.
// The backend has the final word, Check only feeds a warning to the user.
// Unknown types and empty content are not checked.
func Check(recordType, content string) error {
	rule, ok := contentRules[recordType]
	if !ok || content == "" {
		return nil
	}

	if recordType == TypeCNAME {
		content = strings.TrimSuffix(content, ".")
	}

	if err := validate.Var(content, rule.tag); err != nil {
		return rule.err
	}

	if recordType == TypeCNAME && !hyphensOK(content) {
		return ErrInvalidHostname
	}

	return nil
}

// hyphensOK rejects labels ending in a hyphen or holding two in a row,
// which hostname_rfc1123 lets through.
func hyphensOK(name string) bool {
	for _, label := range strings.Split(name, ".") {
		if strings.HasSuffix(label, "-") || strings.Contains(label, "--") {
			return false
		}
	}

	return true
}
